package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/export"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/locale"
	"github.com/BruksfildServices01/habitta/internal/middleware"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

// Mensagens exibidas para cada código de regra de negócio.
var businessMessages = map[string]string{
	"invalid_name":          "Nome é obrigatório.",
	"invalid_income":        "Valor de renda mensal inválido.",
	"invalid_email":         "E-mail inválido.",
	"invalid_email_domain":  "O domínio do e-mail informado não parece ser válido.",
	"invalid_interest_type": "Tipo de interesse inválido.",
	"invalid_status":        "Status inválido.",
	"invalid_type":          "Tipo de estabelecimento inválido.",
	"invalid_price":         "Valores numéricos inválidos.",
	"invalid_price_range":   "A faixa mínima não pode ser maior que a máxima.",
	"invalid_cpf":           "CPF inválido. Deve conter 11 dígitos.",
	"invalid_password":      "A senha deve ter pelo menos 6 caracteres.",
	"password_mismatch":     "As senhas não coincidem.",
	"invalid_level":         "Nível de acesso inválido.",
	"invalid_format":        "Formato de exportação inválido.",
	"invalid_filter":        "Filtro inválido.",
	"invalid_image":         "Arquivo de imagem inválido.",
	"image_too_large":       "A imagem deve ter no máximo 16 MB.",
	"invalid_state":         "A recomendação não está em seleção.",
	"invalid_token":         "Link inválido ou expirado.",

	"client_not_found":         "Cliente não encontrado.",
	"establishment_not_found":  "Estabelecimento não encontrado.",
	"recommendation_not_found": "Recomendação não encontrada.",
	"selection_not_found":      "Nenhuma seleção encontrada para este cliente.",
	"user_not_found":           "Usuário não encontrado.",
	"email_not_found":          "E-mail não encontrado em nosso sistema.",

	"user_already_exists": "CPF ou email já cadastrados.",
	"invalid_credentials": "CPF ou senha incorretos.",
}

// Códigos que não seguem a regra 400/404.
var businessStatus = map[string]int{
	"user_already_exists": http.StatusConflict,
	"invalid_credentials": http.StatusUnauthorized,
}

// writeError converte qualquer falha na resposta HTTP. Erros de persistência
// ficam só no log.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		msg, known := businessMessages[code]
		if !known {
			msg = "Dados inválidos."
		}

		status := http.StatusBadRequest
		if s, ok := businessStatus[code]; ok {
			status = s
		} else if httperr.IsNotFoundCode(code) {
			status = http.StatusNotFound
		}

		httperr.Write(c, status, code, msg)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	if httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "already_exists", "Registro já cadastrado.")
		return
	}

	logrus.WithError(err).
		WithField("route", c.FullPath()).
		WithField("request_id", c.GetString(middleware.ContextRequestID)).
		Error("request failed")

	httperr.Internal(c, "internal_error", "Erro ao processar sua solicitação. Tente novamente.")
}

// orNotFound traduz ausência de registro para o código informado.
func orNotFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func listParams(c *gin.Context) pagination.Params {
	return pagination.Parse(
		c.Query("page"),
		c.Query("busca"),
		c.Query("filtro"),
	)
}

func currentUserID(c *gin.Context) uint {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

// sendExport gera o arquivo em memória para não enviar cabeçalhos antes de um erro.
func sendExport(c *gin.Context, format export.Format, base string, table export.Table) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		writeError(c, err)
		return
	}

	filename := format.Filename(base, locale.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// amount aceita número JSON ou texto como "3000.50", "3.000,50" e "R$ 3.000,50".
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	return a.UnmarshalParam(strings.Trim(string(b), `"`))
}

func (a *amount) UnmarshalParam(raw string) error {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = amount(v)
	return nil
}
