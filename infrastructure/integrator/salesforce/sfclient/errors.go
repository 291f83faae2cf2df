package sfclient

import "errors"

// TransientError marca falhas de rede e de limite de requisições que podem
// ser resolvidas na próxima sincronização agendada.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient informa se o erro (ou algum erro encadeado) é transitório
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
