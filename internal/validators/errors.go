package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPassphrase  = errors.New("passphrase is required")
	ErrEmptyCompanyID   = errors.New("company id is required")
	ErrInvalidCompanyID = errors.New("company id contains forbidden characters")
	ErrEmptyUserID      = errors.New("user id is required")
	ErrInvalidSalt      = errors.New("invalid salt")
	ErrInvalidIV        = errors.New("invalid iv")
	ErrInvalidAuthTag   = errors.New("invalid auth tag")
	ErrEmptyCiphertext  = errors.New("ciphertext is required")
	ErrInvalidKDFParams = errors.New("invalid kdf params")
)
