package mocks

// MockPasswordVerifier is an auth.PasswordVerifier that returns Err, or
// defers to CompareFn when set.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
	Err       error
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return m.Err
}
