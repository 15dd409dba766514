package mail

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ErrInvalidMessage is returned for a message that can not be sent
var ErrInvalidMessage = errors.New("invalid message")

// Message represents an email
type Message struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	HTML    bool
}

// Recipients returns all envelope recipients
func (m *Message) Recipients() []string {
	result := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	result = append(result, m.To...)
	result = append(result, m.Cc...)
	return append(result, m.Bcc...)
}

// Validate checks recipients are present and well formed
func (m *Message) Validate() error {
	recipients := m.Recipients()
	if len(recipients) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidMessage)
	}
	for _, recipient := range recipients {
		if _, err := netmail.ParseAddress(recipient); err != nil {
			return fmt.Errorf("%w: recipient %q: %v", ErrInvalidMessage, recipient, err)
		}
	}
	return nil
}

// Bytes renders message with headers; Bcc recipients are not listed
func (m *Message) Bytes(from string, now time.Time) []byte {
	buffer := new(bytes.Buffer)
	header := func(name, value string) {
		buffer.WriteString(name)
		buffer.WriteString(": ")
		buffer.WriteString(value)
		buffer.WriteString("\r\n")
	}
	header("From", from)
	if len(m.To) > 0 {
		header("To", strings.Join(m.To, ", "))
	}
	if len(m.Cc) > 0 {
		header("Cc", strings.Join(m.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", "<"+uuid.NewString()+"@"+domain(from)+">")
	header("MIME-Version", "1.0")
	contentType := "text/plain"
	if m.HTML {
		contentType = "text/html"
	}
	header("Content-Type", contentType+"; charset=UTF-8")
	buffer.WriteString("\r\n")
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	buffer.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buffer.Bytes()
}

func domain(address string) string {
	if parsed, err := netmail.ParseAddress(address); err == nil {
		address = parsed.Address
	}
	if index := strings.LastIndex(address, "@"); index != -1 && index < len(address)-1 {
		return address[index+1:]
	}
	return "localhost"
}

// ParseMessage decodes a JSON message:
//
//	{"to": ["a@example.com"], "cc": "b@example.com", "subject": "Hi", "body": "<b>Hi</b>", "html": true}
func ParseMessage(data []byte) (*Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidMessage)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected JSON object", ErrInvalidMessage)
	}
	result := &Message{
		To:      addresses(doc.Get("to")),
		Cc:      addresses(doc.Get("cc")),
		Bcc:     addresses(doc.Get("bcc")),
		Subject: doc.Get("subject").String(),
		Body:    doc.Get("body").String(),
		HTML:    doc.Get("html").Bool(),
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func addresses(value gjson.Result) []string {
	if !value.Exists() {
		return nil
	}
	if !value.IsArray() {
		if text := strings.TrimSpace(value.String()); text != "" {
			return []string{text}
		}
		return nil
	}
	var result []string
	for _, item := range value.Array() {
		if text := strings.TrimSpace(item.String()); text != "" {
			result = append(result, text)
		}
	}
	return result
}

func mailAddress(text string) (string, error) {
	parsed, err := netmail.ParseAddress(text)
	if err != nil {
		return "", err
	}
	return parsed.Address, nil
}
