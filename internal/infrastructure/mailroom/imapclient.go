package mailroom

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	domain "skywrench/internal/domain/mailroom"
	sharedConfig "skywrench/internal/shared/config"
	"skywrench/internal/shared/logger"
)

// Client fetches unseen inbound messages. The interface keeps the poller
// independent of the transport so a POP3 client can slot in later.
type Client interface {
	FetchUnseen(limit int) ([]domain.Message, error)
}

// IMAPClient dials the mailbox fresh on every fetch and marks retrieved
// messages as seen before logging out.
type IMAPClient struct {
	cfg    sharedConfig.MailroomConfig
	logger logger.Interface
}

func NewIMAPClient(cfg sharedConfig.MailroomConfig, lg logger.Interface) *IMAPClient {
	return &IMAPClient{
		cfg:    cfg,
		logger: lg,
	}
}

func (c *IMAPClient) FetchUnseen(limit int) ([]domain.Message, error) {
	conn, err := client.DialTLS(c.cfg.GetAddr(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial imap server: %w", err)
	}
	defer conn.Logout()

	if err := conn.Login(c.cfg.IMAPUser, c.cfg.IMAPPassword); err != nil {
		return nil, fmt.Errorf("failed to login to imap server: %w", err)
	}

	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := conn.Select(mailbox, false); err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	uids, err := conn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search unseen messages: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}
	if len(uids) > limit {
		// Newest messages win when the backlog exceeds one batch.
		uids = uids[len(uids)-limit:]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	fetched := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- conn.UidFetch(seqset, items, fetched)
	}()

	var msgs []domain.Message
	for raw := range fetched {
		body := raw.GetBody(section)
		if body == nil {
			c.logger.Warnw("imap message without body section", "uid", raw.Uid)
			continue
		}

		msg, err := parseRawMessage(raw.Uid, body)
		if err != nil {
			c.logger.Errorw("failed to parse inbound email", "uid", raw.Uid, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	markSeen := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := conn.UidStore(seqset, markSeen, []interface{}{imap.SeenFlag}, nil); err != nil {
		return nil, fmt.Errorf("failed to mark messages seen: %w", err)
	}

	return msgs, nil
}

// parseRawMessage turns an RFC 822 literal into the intake shape. Only the
// first text/plain part is kept as the body; other parts count as
// attachments when they carry an attachment disposition.
func parseRawMessage(uid uint32, r io.Reader) (domain.Message, error) {
	parsed, err := mail.ReadMessage(r)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to read message: %w", err)
	}

	header := parsed.Header
	msg := domain.Message{
		UID:       uid,
		MessageID: strings.Trim(header.Get("Message-Id"), "<>"),
		Subject:   decodeHeader(header.Get("Subject")),
	}
	if date, err := header.Date(); err == nil {
		msg.ReceivedAt = date
	}
	if from, err := mail.ParseAddress(header.Get("From")); err == nil {
		msg.From = strings.ToLower(from.Address)
	} else {
		msg.From = strings.ToLower(strings.TrimSpace(header.Get("From")))
	}
	if to, err := mail.ParseAddress(header.Get("To")); err == nil {
		msg.To = strings.ToLower(to.Address)
	} else {
		msg.To = strings.ToLower(strings.TrimSpace(header.Get("To")))
	}

	contentType := header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		body, err := decodeBody(parsed.Body, header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return domain.Message{}, err
		}
		msg.Body = body
		return msg, nil
	}

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to read mime part: %w", err)
		}

		disposition, _, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		if disposition == "attachment" {
			msg.AttachmentCount++
			continue
		}

		partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if msg.Body == "" && (partType == "text/plain" || partType == "") {
			body, err := decodeBody(part, part.Header.Get("Content-Transfer-Encoding"))
			if err != nil {
				return domain.Message{}, err
			}
			msg.Body = body
		}
	}
	msg.HasAttachments = msg.AttachmentCount > 0

	return msg, nil
}

func decodeBody(r io.Reader, transferEncoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message body: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func decodeHeader(value string) string {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
