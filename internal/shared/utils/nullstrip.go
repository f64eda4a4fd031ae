package utils

// StripNilValues returns a copy of the input map without entries whose
// value is nil. Downstream consumers of emitted actions reject explicit
// nulls, so object payloads are filtered before serialization. The
// operation is idempotent.
func StripNilValues(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
