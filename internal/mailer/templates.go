package mailer

import (
	"fmt"
	"time"
)

const ResetPasswordSubject = "Habitta - Redefinição de senha"

func ResetPasswordLink(baseURL, token string) string {
	return fmt.Sprintf("%s/redefinir-senha/%s", baseURL, token)
}

func ResetPasswordBody(name, link string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Olá, %s.\n\n"+
			"Recebemos um pedido para redefinir a sua senha no Habitta.\n"+
			"Use o link abaixo em até %d minutos:\n\n%s\n\n"+
			"Se você não fez esse pedido, ignore este e-mail.\n",
		name, int(ttl.Minutes()), link,
	)
}
