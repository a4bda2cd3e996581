package upload

import "errors"

var (
	ErrNotAnImage  = errors.New("file is not a jpeg or png image")
	ErrFileTooBig  = errors.New("file exceeds the size limit")
	ErrNotFound    = errors.New("upload not found")
	ErrNotYourFile = errors.New("upload belongs to another user")
)
