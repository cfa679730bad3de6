package application

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ecommerce/internal/content/domain"
)

type memoryBlockRepo struct {
	blocks map[string]*domain.Block
}

func newMemoryBlockRepo() *memoryBlockRepo {
	return &memoryBlockRepo{blocks: make(map[string]*domain.Block)}
}

func (r *memoryBlockRepo) ListByType(_ context.Context, t domain.BlockType) ([]*domain.Block, error) {
	var out []*domain.Block
	for _, b := range r.blocks {
		if b.Type == t {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memoryBlockRepo) Get(_ context.Context, t domain.BlockType, id string) (*domain.Block, error) {
	b, ok := r.blocks[id]
	if !ok || b.Type != t {
		return nil, domain.ErrBlockNotFound
	}
	return b, nil
}

func (r *memoryBlockRepo) Save(_ context.Context, b *domain.Block) error {
	r.blocks[b.ID] = b
	return nil
}

func (r *memoryBlockRepo) Delete(_ context.Context, t domain.BlockType, id string) error {
	b, ok := r.blocks[id]
	if !ok || b.Type != t {
		return domain.ErrBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *memoryBlockRepo) SaveAll(_ context.Context, _ domain.BlockType, blocks []*domain.Block) error {
	for _, b := range blocks {
		r.blocks[b.ID] = b
	}
	return nil
}

func addBlocks(t *testing.T, svc *ContentService, blockType domain.BlockType, titles ...string) []*domain.Block {
	t.Helper()
	out := make([]*domain.Block, 0, len(titles))
	for _, title := range titles {
		b, err := svc.AddBlock(context.Background(), blockType, BlockInput{Title: title})
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestAddBlockAppendsAtEnd(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())

	blocks := addBlocks(t, svc, domain.BlockTypeHeroSlide, "first", "second", "third")

	assert.Equal(t, 0, blocks[0].Position)
	assert.Equal(t, 1, blocks[1].Position)
	assert.Equal(t, 2, blocks[2].Position)
	assert.True(t, blocks[0].Active)
}

func TestAddBlockRejectsUnknownType(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())

	_, err := svc.AddBlock(context.Background(), "popup", BlockInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownBlockType)
}

func TestBlockTypesCoverAllPanels(t *testing.T) {
	assert.Len(t, domain.BlockTypes, 10)
	for _, bt := range domain.BlockTypes {
		assert.True(t, bt.Valid(), string(bt))
	}
}

func TestUpdateBlockKeepsPositionAndActive(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeBanner, "a", "b")

	toggled, err := svc.ToggleActive(context.Background(), domain.BlockTypeBanner, blocks[1].ID)
	require.NoError(t, err)
	require.False(t, toggled.Active)

	updated, err := svc.UpdateBlock(context.Background(), domain.BlockTypeBanner, blocks[1].ID, BlockInput{Title: "b2"})
	require.NoError(t, err)
	assert.Equal(t, "b2", updated.Title)
	assert.Equal(t, 1, updated.Position)
	assert.False(t, updated.Active)
}

func TestReorderBlocks(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeFAQ, "q1", "q2", "q3")

	reordered, err := svc.ReorderBlocks(context.Background(), domain.BlockTypeFAQ,
		[]string{blocks[2].ID, blocks[0].ID, blocks[1].ID})
	require.NoError(t, err)

	assert.Equal(t, "q3", reordered[0].Title)
	assert.Equal(t, "q1", reordered[1].Title)
	assert.Equal(t, "q2", reordered[2].Title)
	assert.Equal(t, 0, reordered[0].Position)
	assert.Equal(t, 2, reordered[2].Position)
}

func TestReorderRejectsMismatchedIDs(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeFAQ, "q1", "q2")

	_, err := svc.ReorderBlocks(context.Background(), domain.BlockTypeFAQ, []string{blocks[0].ID})
	assert.ErrorIs(t, err, ErrReorderMismatch)

	_, err = svc.ReorderBlocks(context.Background(), domain.BlockTypeFAQ, []string{blocks[0].ID, "ghost"})
	assert.ErrorIs(t, err, ErrReorderMismatch)
}

func TestToggleActiveFlips(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeAnnouncement, "sale")

	b, err := svc.ToggleActive(context.Background(), domain.BlockTypeAnnouncement, blocks[0].ID)
	require.NoError(t, err)
	assert.False(t, b.Active)

	b, err = svc.ToggleActive(context.Background(), domain.BlockTypeAnnouncement, blocks[0].ID)
	require.NoError(t, err)
	assert.True(t, b.Active)
}

func TestListBlocksActiveOnly(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeOfferStrip, "a", "b", "c")

	_, err := svc.ToggleActive(context.Background(), domain.BlockTypeOfferStrip, blocks[1].ID)
	require.NoError(t, err)

	all, err := svc.ListBlocks(context.Background(), domain.BlockTypeOfferStrip, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := svc.ListBlocks(context.Background(), domain.BlockTypeOfferStrip, true)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestDeleteBlock(t *testing.T) {
	svc := NewContentService(newMemoryBlockRepo())
	blocks := addBlocks(t, svc, domain.BlockTypeBrandLogo, "acme")

	require.NoError(t, svc.DeleteBlock(context.Background(), domain.BlockTypeBrandLogo, blocks[0].ID))
	assert.ErrorIs(t,
		svc.DeleteBlock(context.Background(), domain.BlockTypeBrandLogo, blocks[0].ID),
		domain.ErrBlockNotFound)
}
