package utils

func ToPointer[T any](v T) *T {
	return &v
}

func BoolToPointer(b bool) *bool {
	return &b
}

func StringToPointer(s string) *string {
	return &s
}
