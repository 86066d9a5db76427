package recommendation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/httperr"
)

// notFound traduz ausência de registro para o código de negócio;
// qualquer outra falha segue como erro de persistência.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
