// Package diskreport turns disk-diagnostic reports (HTML, plain text and
// PDF) into a consolidated per-drive health summary.
//
// This package contains domain types, interfaces and the pure extraction
// logic shared by every report format, following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., goquery/, pdfcpu/, excelize/, sqlite/).
package diskreport
