package categories

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryProtected = errors.New("category is protected")
	ErrCategoryInUse     = errors.New("category in use")
)
