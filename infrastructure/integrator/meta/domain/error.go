package metadomain

import "strings"

// ErrorResponse representa a estrutura de erro da Graph API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da Graph API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsAuthError verifica se o erro é de token inválido/expirado ou de permissão.
// O código 190 representa token expirado; subcódigos 460, 463 e 467 são
// variações do mesmo problema. Os códigos 200-299 são erros de permissão.
func (e *ErrorResponse) IsAuthError() bool {
	if e.Error.Code == 190 {
		return true
	}

	if e.Error.Type == "OAuthException" &&
		(e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467) {
		return true
	}

	return e.Error.Code >= 200 && e.Error.Code <= 299
}

// IsInvalidParameter verifica se o erro é de parâmetro inválido (código 100),
// que não melhora com retry.
func (e *ErrorResponse) IsInvalidParameter() bool {
	return e.Error.Code == 100
}

// IsPermanent indica que repetir a chamada com os mesmos argumentos não
// vai funcionar: o chamador precisa reconfigurar credencial ou parâmetros.
func (e *ErrorResponse) IsPermanent() bool {
	if e.IsAuthError() || e.IsInvalidParameter() {
		return true
	}

	lowered := strings.ToLower(e.Error.Message)
	return strings.Contains(lowered, "invalid oauth") ||
		strings.Contains(lowered, "permission") ||
		strings.Contains(lowered, "unsupported get request")
}
