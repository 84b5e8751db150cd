package repositories

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrStaffNotFound   = errors.New("staff account not found")
)
