// Package pagination sorts and pages batch scenario results for display.
//
// Sort expressions take the form "field" or "field:order", for example
// "savings:desc". Paging is offset based: Offset results are skipped and at
// most Limit are returned.
package pagination
