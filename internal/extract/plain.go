package extract

func extractPlain(data []byte) (string, error) {
	return string(data), nil
}
