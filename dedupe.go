package diskreport

// Dedupe drops records whose VpdSerial was already seen earlier in the
// input. Records with an empty serial are always kept. The relative order
// of kept records is preserved and their fields are left untouched.
func Dedupe(records []*DriveRecord) []*DriveRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]*DriveRecord, 0, len(records))
	for _, r := range records {
		if r.VpdSerial == "" {
			out = append(out, r)
			continue
		}
		if _, ok := seen[r.VpdSerial]; ok {
			continue
		}
		seen[r.VpdSerial] = struct{}{}
		out = append(out, r)
	}
	return out
}
