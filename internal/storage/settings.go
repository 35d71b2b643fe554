package storage

// Settings are plain key-value rows; a missing key means the caller's
// default applies.

// GetSetting returns the stored value for key, or fallback when the key
// is absent or unreadable.
func (s *Service) GetSetting(key, fallback string) string {
	res := s.exec.Run(`SELECT value FROM settings WHERE key = ?`, key)
	if !res.OK() || len(res.Rows) == 0 {
		return fallback
	}
	if v, ok := res.Rows[0]["value"].(string); ok {
		return v
	}
	return fallback
}

// PutSetting stores a value under key, overwriting any previous value.
func (s *Service) PutSetting(key, value string) error {
	res := s.exec.Run(`SELECT id FROM settings WHERE key = ?`, key)
	if !res.OK() {
		return &Error{Op: "putSetting", Table: "settings", Err: res.Err}
	}
	if len(res.Rows) > 0 {
		id, _ := asNumber(res.Rows[0]["id"])
		_, err := s.Update("settings", int64(id), map[string]interface{}{"value": value})
		return err
	}
	_, err := s.Create("settings", map[string]interface{}{"key": key, "value": value})
	return err
}
