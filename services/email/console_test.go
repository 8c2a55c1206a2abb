package emailsvc

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educamais/educamais/core"
)

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	svc := NewConsoleServiceMock(core.NewTestConfig())

	welcome := &core.EmailMessage{
		To:           []mail.Address{{Name: "Ana", Address: "ana@escola.com"}},
		Subject:      "Bem-vindo(a)!",
		TemplateName: "welcome",
		TemplateData: struct{ Name, Email string }{"Ana", "ana@escola.com"},
	}
	plain := &core.EmailMessage{To: []mail.Address{{Address: "bia@escola.com"}}, BodyStr: "oi"}
	noRecipient := &core.EmailMessage{BodyStr: "ninguém"}

	svc.SendMessages(welcome, plain, noRecipient)

	sent := svc.SentMessages()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].TextContent, "Olá, Ana!")
	assert.Contains(t, sent[0].HTMLContent, "<strong>ana@escola.com</strong>")
	assert.True(t, strings.HasSuffix(sent[0].TextContent, "EducaMais"))
	assert.Equal(t, "oi", sent[1].TextContent)
	assert.Empty(t, sent[1].HTMLContent)
	assert.Equal(t, []error{errNothingToSend}, svc.Errors())

	out := svc.format(sent[0])
	assert.Contains(t, out, "Subject: [EducaMais] Bem-vindo(a)!")
	assert.Contains(t, out, "To: \"Ana\" <ana@escola.com>")

	svc.Reset()
	assert.Empty(t, svc.SentMessages())
}
