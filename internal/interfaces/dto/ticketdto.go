package dto

import (
	"time"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/shared/services/markdown"
)

type TagDTO struct {
	ID  uint   `json:"id"`
	Tag string `json:"tag"`
}

type TicketDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Type            string    `json:"type"`
	CreatorID       string    `json:"creator_id"`
	AssigneeID      string    `json:"assignee_id"`
	QueueID         *uint     `json:"queue_id,omitempty"`
	Tags            []*TagDTO `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type MessageDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	Type      string    `json:"message_type"`
	SenderID  string    `json:"sender_id"`
	Sender    *UserDTO  `json:"sender,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FileDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketDetailsDTO struct {
	Ticket   *TicketDTO    `json:"ticket"`
	Creator  *UserDTO      `json:"creator"`
	Assignee *UserDTO      `json:"assignee"`
	Messages []*MessageDTO `json:"messages"`
	Tags     []*TagDTO     `json:"tags"`
	Files    []*FileDTO    `json:"files"`
}

// TicketMapper renders markdown fields while converting.
type TicketMapper struct {
	md markdown.MarkdownService
}

func NewTicketMapper(md markdown.MarkdownService) *TicketMapper {
	return &TicketMapper{md: md}
}

func (m *TicketMapper) Ticket(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		DescriptionHTML: m.md.Render(t.Description()),
		Status:          t.Status().String(),
		Priority:        t.Priority().String(),
		Type:            t.Type().String(),
		CreatorID:       t.CreatorID().String(),
		AssigneeID:      t.AssigneeID().String(),
		QueueID:         t.QueueID(),
		Tags:            ToTagDTOs(t.Tags()),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func (m *TicketMapper) Tickets(tickets []*ticket.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, m.Ticket(t))
	}
	return out
}

func (m *TicketMapper) Message(msg *ticket.Message) *MessageDTO {
	return &MessageDTO{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		Text:      msg.Text(),
		HTML:      m.md.Render(msg.Text()),
		Type:      msg.Type().String(),
		SenderID:  msg.SenderID().String(),
		CreatedAt: msg.CreatedAt(),
	}
}

func (m *TicketMapper) MessageViews(views []crm.MessageView) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(views))
	for _, v := range views {
		d := m.Message(v.Message)
		d.Sender = ToUserDTO(v.Sender)
		out = append(out, d)
	}
	return out
}

func (m *TicketMapper) Details(d *crm.TicketDetails) *TicketDetailsDTO {
	return &TicketDetailsDTO{
		Ticket:   m.Ticket(d.Ticket),
		Creator:  ToUserDTO(d.Creator),
		Assignee: ToUserDTO(d.Assignee),
		Messages: m.MessageViews(d.Messages),
		Tags:     ToTagDTOs(d.Tags),
		Files:    ToFileDTOs(d.Files),
	}
}

func ToTagDTOs(tags []*ticket.Tag) []*TagDTO {
	out := make([]*TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagDTO(t))
	}
	return out
}

func ToTagDTO(t *ticket.Tag) *TagDTO {
	return &TagDTO{ID: t.ID(), Tag: t.Text()}
}

func ToFileDTOs(files []*ticket.File) []*FileDTO {
	out := make([]*FileDTO, 0, len(files))
	for _, f := range files {
		out = append(out, ToFileDTO(f))
	}
	return out
}

func ToFileDTO(f *ticket.File) *FileDTO {
	return &FileDTO{
		ID:        f.ID(),
		TicketID:  f.TicketID(),
		FileName:  f.FileName(),
		MimeType:  f.MimeType(),
		URL:       f.URL(),
		CreatedAt: f.CreatedAt(),
	}
}
