package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
)

type TagRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TagRepository) Create(ctx context.Context, tag *ticket.Tag) error {
	text := tag.Text()
	model := &models.TagModel{Tag: &text}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return tag.SetID(model.ID)
}

func (r *TagRepository) List(ctx context.Context) ([]*ticket.Tag, error) {
	var tagModels []models.TagModel
	if err := r.db.WithContext(ctx).Order("tag ASC").Find(&tagModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return r.toDomain(tagModels)
}

func (r *TagRepository) GetByText(ctx context.Context, text string) (*ticket.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).Where("tag = ?", text).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return r.mapper.TagToDomain(&model)
}

func (r *TagRepository) Attach(ctx context.Context, link ticket.TicketTag) error {
	model := &models.TicketTagModel{TicketID: link.TicketID, TagID: link.TagID}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Detach(ctx context.Context, link ticket.TicketTag) error {
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND tag_id = ?", link.TicketID, link.TagID).
		Delete(&models.TicketTagModel{}).Error; err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	return nil
}

func (r *TagRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Tag, error) {
	byTicket, err := r.ListByTickets(ctx, []uint{ticketID})
	if err != nil {
		return nil, err
	}
	tags := byTicket[ticketID]
	if tags == nil {
		tags = []*ticket.Tag{}
	}
	return tags, nil
}

// tagLinkRow is one join of ticket_tags with tags.
type tagLinkRow struct {
	TicketID uint
	ID       uint
	Tag      *string
}

func (r *TagRepository) ListByTickets(ctx context.Context, ticketIDs []uint) (map[uint][]*ticket.Tag, error) {
	out := make(map[uint][]*ticket.Tag, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return out, nil
	}

	var rows []tagLinkRow
	if err := r.db.WithContext(ctx).
		Table("ticket_tags").
		Select("ticket_tags.ticket_id, tags.id, tags.tag").
		Joins("JOIN tags ON tags.id = ticket_tags.tag_id").
		Where("ticket_tags.ticket_id IN ?", ticketIDs).
		Order("ticket_tags.ticket_id ASC").
		Order("tags.tag ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket tags: %w", err)
	}

	for _, row := range rows {
		tag, err := r.mapper.TagToDomain(&models.TagModel{ID: row.ID, Tag: row.Tag})
		if err != nil {
			return nil, err
		}
		// a tag attached twice is reported once
		if containsTag(out[row.TicketID], tag.ID()) {
			continue
		}
		out[row.TicketID] = append(out[row.TicketID], tag)
	}
	return out, nil
}

func containsTag(tags []*ticket.Tag, id uint) bool {
	for _, t := range tags {
		if t.ID() == id {
			return true
		}
	}
	return false
}

func (r *TagRepository) toDomain(tagModels []models.TagModel) ([]*ticket.Tag, error) {
	return mapper.MapSliceErr(tagModels, func(m models.TagModel) (*ticket.Tag, error) {
		return r.mapper.TagToDomain(&m)
	})
}
