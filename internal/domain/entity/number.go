package entity

import "fmt"

// PadNumber formatea un correlativo de solicitud con al menos tres dígitos.
func PadNumber(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%03d", n)
}
