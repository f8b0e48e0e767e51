package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrPtr returns a pointer to s, or nil when s is empty. Empty strings are
// how the CLI and forms spell "no parent" / "unassigned".
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DerefStr returns *p, or "" for nil.
func DerefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// PtrEqual reports whether two optional references name the same id.
func PtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
