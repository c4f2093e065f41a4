package mappers

import (
	"github.com/autocrm/autocrm/internal/domain/ticket"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/constants"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*ticket.Message, error)
	TagToDomain(model *models.TagModel) (*ticket.Tag, error)
	FileToModel(f *ticket.File) *models.TicketFileModel
	FileToDomain(model *models.TicketFileModel) (*ticket.File, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: ptr(t.Description()),
		Status:      ptr(t.Status().String()),
		Priority:    t.Priority().String(),
		Type:        t.Type().String(),
		Creator:     userRef(t.CreatorID()),
		Assignee:    userRef(t.AssigneeID()),
		QueueID:     t.QueueID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// ToDomain decodes a tickets row. A NULL status reads as open; any other
// value outside the enum is a RowError.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.StatusOpen
	if model.Status != nil {
		parsed, err := vo.NewTicketStatus(*model.Status)
		if err != nil {
			return nil, rowError(constants.TableTickets, "status", *model.Status, err)
		}
		status = parsed
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, rowError(constants.TableTickets, "priority", model.Priority, err)
	}
	ticketType, err := vo.NewTicketType(model.Type)
	if err != nil {
		return nil, rowError(constants.TableTickets, "type", model.Type, err)
	}
	creator, err := parseUserRef(constants.TableTickets, "creator", model.Creator)
	if err != nil {
		return nil, err
	}
	assignee, err := parseUserRef(constants.TableTickets, "assignee", model.Assignee)
	if err != nil {
		return nil, err
	}

	t, err := ticket.ReconstructTicket(
		model.ID,
		model.Title,
		deref(model.Description),
		status,
		priority,
		ticketType,
		creator,
		assignee,
		model.QueueID,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, rowError(constants.TableTickets, "id", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.MessageModel {
	ticketID := msg.TicketID()
	return &models.MessageModel{
		ID:          msg.ID(),
		TicketID:    &ticketID,
		Text:        ptr(msg.Text()),
		SenderID:    userRef(msg.SenderID()),
		MessageType: ptr(msg.Type().String()),
		CreatedAt:   msg.CreatedAt(),
	}
}

// MessageToDomain decodes a messages row; NULL message_type reads as public.
func (m *TicketMapperImpl) MessageToDomain(model *models.MessageModel) (*ticket.Message, error) {
	if model == nil {
		return nil, nil
	}
	if model.TicketID == nil {
		return nil, rowError(constants.TableMessages, "ticket_id", nil, nil)
	}
	messageType, err := vo.NewMessageType(deref(model.MessageType))
	if err != nil {
		return nil, rowError(constants.TableMessages, "message_type", deref(model.MessageType), err)
	}
	sender, err := parseUserRef(constants.TableMessages, "sender_id", model.SenderID)
	if err != nil {
		return nil, err
	}

	msg, err := ticket.ReconstructMessage(model.ID, *model.TicketID, deref(model.Text), sender, messageType, model.CreatedAt.UTC())
	if err != nil {
		return nil, rowError(constants.TableMessages, "id", model.ID, err)
	}
	return msg, nil
}

func (m *TicketMapperImpl) TagToDomain(model *models.TagModel) (*ticket.Tag, error) {
	if model == nil {
		return nil, nil
	}
	tag, err := ticket.ReconstructTag(model.ID, deref(model.Tag))
	if err != nil {
		return nil, rowError(constants.TableTags, "id", model.ID, err)
	}
	return tag, nil
}

func (m *TicketMapperImpl) FileToModel(f *ticket.File) *models.TicketFileModel {
	ticketID := f.TicketID()
	return &models.TicketFileModel{
		ID:        f.ID(),
		TicketID:  &ticketID,
		FileName:  ptr(f.FileName()),
		FileType:  optionalString(f.MimeType()),
		FileURL:   ptr(f.URL()),
		CreatedAt: f.CreatedAt(),
	}
}

func (m *TicketMapperImpl) FileToDomain(model *models.TicketFileModel) (*ticket.File, error) {
	if model == nil {
		return nil, nil
	}
	if model.TicketID == nil {
		return nil, rowError(constants.TableTicketFiles, "ticket_id", nil, nil)
	}
	if deref(model.FileURL) == "" {
		return nil, rowError(constants.TableTicketFiles, "file_url", nil, nil)
	}
	f, err := ticket.ReconstructFile(model.ID, *model.TicketID, deref(model.FileName), deref(model.FileType), *model.FileURL, model.CreatedAt.UTC())
	if err != nil {
		return nil, rowError(constants.TableTicketFiles, "id", model.ID, err)
	}
	return f, nil
}
