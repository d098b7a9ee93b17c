// Package printing lays report tables out on fixed-size pages and stores the
// resulting documents.
//
// The Engine sizes columns from their content, shrinks them to the page
// width, wraps cell text, and breaks pages between rows while repeating the
// header. It draws on a Canvas; PDFCanvas is the gofpdf-backed implementation.
// Position on the page is carried in a PageCursor value that every call
// returns updated.
//
// DocumentSink persists finished documents. FileSystemStorage is the local
// implementation; an S3 implementation lives in the storage package.
package printing
