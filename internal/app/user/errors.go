package user

import (
	domcommon "usermanagement/internal/domain/common"
)

func IsDuplicateEmail(err error) bool {
	return domcommon.IsUniqueViolation(err)
}
