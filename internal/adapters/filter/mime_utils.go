package filter

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

// wordDecoder decodes RFC 2047 encoded-words, resolving charsets through
// the IANA index so non-UTF-8 subjects and filenames survive intact.
var wordDecoder = mime.WordDecoder{
	CharsetReader: charsetReader,
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		// Unknown charset, pass bytes through rather than failing the message
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// decodeEncodedHeader decodes a possibly RFC 2047 encoded header value.
func decodeEncodedHeader(value string) (string, error) {
	if !strings.Contains(value, "=?") {
		return value, nil
	}
	return wordDecoder.DecodeHeader(value)
}

// decodeCharsetBody converts a body in the given charset to UTF-8. The
// input is returned unchanged when the charset is unknown or already UTF-8.
func decodeCharsetBody(charset string, body []byte) []byte {
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return body
	}
	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return body
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return body
	}
	return decoded
}

// ParseEmail converts a parsed message into the triage input model, pulling
// the sender, subject, plain-text body and attachment filenames out of the
// MIME structure.
func ParseEmail(msg *mail.Message) (*core.Email, error) {
	content, err := extractContentFromMessage(msg)
	if err != nil {
		return nil, err
	}

	email := &core.Email{
		ID:            messageID(msg),
		Body:          content.Text,
		Attachments:   content.Attachments,
		HasAttachment: len(content.Attachments) > 0,
		Headers:       make(map[string][]string),
	}

	for key, values := range msg.Header {
		email.Headers[key] = values
	}

	if subject := msg.Header.Get("Subject"); subject != "" {
		if decoded, err := decodeEncodedHeader(subject); err == nil {
			email.Subject = decoded
		} else {
			email.Subject = subject
		}
	}

	if from := msg.Header.Get("From"); from != "" {
		if decoded, err := decodeEncodedHeader(from); err == nil {
			from = decoded
		}
		if addr, err := mail.ParseAddress(from); err == nil {
			email.FromName = addr.Name
			email.FromAddress = addr.Address
		} else {
			email.FromAddress = from
		}
	}

	if to := msg.Header.Get("To"); to != "" {
		if addrs, err := mail.ParseAddressList(to); err == nil {
			for _, addr := range addrs {
				email.To = append(email.To, addr.Address)
			}
		} else {
			email.To = []string{to}
		}
	}

	return email, nil
}

// messageID returns the Message-ID header stripped of angle brackets, or a
// fresh UUID when the message carries none.
func messageID(msg *mail.Message) string {
	id := strings.Trim(msg.Header.Get("Message-Id"), "<> \t")
	if id == "" {
		id = strings.Trim(msg.Header.Get("Message-ID"), "<> \t")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return id
}

// messageContent is the triage-relevant material pulled out of a MIME message.
type messageContent struct {
	Text        string
	Attachments []string
}

// extractContentFromMessage walks a parsed email and collects the plain-text
// body plus the filenames of all attachments. Nested multiparts are followed.
func extractContentFromMessage(msg *mail.Message) (*messageContent, error) {
	content := &messageContent{}

	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		// Single-part message, the whole body is the text
		bodyBytes, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return nil, readErr
		}
		if err == nil {
			bodyBytes = decodeCharsetBody(params["charset"], bodyBytes)
		}
		content.Text = string(bodyBytes)
		return content, nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		bodyBytes, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return nil, readErr
		}
		content.Text = string(bodyBytes)
		return content, nil
	}

	var text bytes.Buffer
	if err := walkMultipart(msg.Body, boundary, &text, &content.Attachments, 0); err != nil {
		if text.Len() == 0 && len(content.Attachments) == 0 {
			return nil, err
		}
	}
	content.Text = text.String()
	return content, nil
}

// maxMultipartDepth bounds recursion into nested multipart containers.
const maxMultipartDepth = 8

func walkMultipart(r io.Reader, boundary string, text *bytes.Buffer, attachments *[]string, depth int) error {
	if depth > maxMultipartDepth {
		return nil
	}

	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if name := partFilename(part); name != "" {
			*attachments = append(*attachments, name)
			continue
		}

		partType := part.Header.Get("Content-Type")
		mediaType, params, err := mime.ParseMediaType(partType)
		if err != nil {
			mediaType = "text/plain"
		}

		switch {
		case strings.HasPrefix(mediaType, "multipart/"):
			if nested, ok := params["boundary"]; ok {
				if err := walkMultipart(part, nested, text, attachments, depth+1); err != nil {
					return err
				}
			}
		case mediaType == "text/plain" || partType == "":
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			text.Write(decodeCharsetBody(params["charset"], partBytes))
			text.WriteString("\n")
		}
		// Other inline parts (text/html etc.) are ignored, the plain text
		// alternative carries the same content for keyword purposes.
	}
}

// partFilename returns the attachment filename of a part, or "" for inline
// content. Encoded filenames are decoded and path components stripped.
func partFilename(part *multipart.Part) string {
	name := part.FileName()
	if name == "" {
		// Some senders only set name= on Content-Type
		if _, params, err := mime.ParseMediaType(part.Header.Get("Content-Type")); err == nil {
			name = params["name"]
		}
	}
	if name == "" {
		return ""
	}
	if decoded, err := decodeEncodedHeader(name); err == nil {
		name = decoded
	}
	return filepath.Base(name)
}
