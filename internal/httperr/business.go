package httperr

import "errors"

// BusinessError é um erro de regra de negócio identificado por um
// código estável. Os use cases devolvem códigos; só o handler decide
// o status HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// CodeOf extrai o código de negócio de qualquer ponto da cadeia
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
