package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educamais/educamais/core"
	logsvc "github.com/educamais/educamais/services/logger"
)

func Test_sendgridService_prepare(t *testing.T) {
	conf := core.NewTestConfig()
	svc := newSendgridService(conf, logsvc.NewRollbarLogger(zap.NewNop().Sugar(), conf))
	ana := mail.Address{Name: "Ana", Address: "ana@escola.com"}

	t.Run("nothing to send", func(t *testing.T) {
		_, err := svc.prepare(&core.EmailMessage{Subject: "Oi", BodyStr: "sem destinatário"})
		assert.Equal(t, errNothingToSend, err)
	})

	t.Run("plain text", func(t *testing.T) {
		m, err := svc.prepare(&core.EmailMessage{To: []mail.Address{ana}, Subject: "Oi", BodyStr: "Olá!"})
		require.NoError(t, err)
		require.Len(t, m.Personalizations, 1)
		assert.Equal(t, "[EducaMais] Oi", m.Personalizations[0].Subject)
		assert.Equal(t, "ana@escola.com", m.Personalizations[0].To[0].Address)
		require.Len(t, m.Content, 1)
		assert.Equal(t, "text/plain", m.Content[0].Type)
		assert.Empty(t, m.Categories)
	})

	t.Run("template", func(t *testing.T) {
		msg := &core.EmailMessage{
			To:           []mail.Address{ana},
			Subject:      "Bem-vindo(a)!",
			TemplateName: "welcome",
			TemplateData: map[string]string{"Name": "Ana", "Email": "ana@escola.com"},
		}
		m, err := svc.prepare(msg)
		require.NoError(t, err)
		assert.Equal(t, []string{"welcome"}, m.Categories)
		require.Len(t, m.Content, 2)
		assert.Contains(t, m.Content[0].Value, "Olá, Ana!")
		assert.Equal(t, "text/html", m.Content[1].Type)
	})
}
