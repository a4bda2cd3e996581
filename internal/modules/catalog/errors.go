package catalog

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrOwnerNotApproved = errors.New("owner account is not approved")
	ErrBrandExists      = errors.New("owner already has a brand")
	ErrBrandNameTaken   = errors.New("brand name is already taken")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandNotApproved = errors.New("brand is not approved")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)
