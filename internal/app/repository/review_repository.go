package repository

import (
	"sort"

	"github.com/tastebook/tastebook-backend/internal/app/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview inserts a review and reloads it with its author
func (r *ReviewRepository) CreateReview(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(review, review.ID).Error
}

// GetReviewByID fetches a single review row with its author
func (r *ReviewRepository) GetReviewByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetTree fetches a review together with its fully materialized reply
// tree. Children appear in insertion order.
func (r *ReviewRepository) GetTree(id uint) (*model.Review, error) {
	root, err := r.GetReviewByID(id)
	if err != nil {
		return nil, err
	}

	descendants, err := r.collectDescendants(r.db, []uint{root.ID})
	if err != nil {
		return nil, err
	}

	arena := make([]*model.Review, 0, len(descendants)+1)
	arena = append(arena, root)
	for i := range descendants {
		arena = append(arena, &descendants[i])
	}
	assembleReplies(arena)

	return root, nil
}

// GetTreesByRecipeID fetches every root review of a recipe with its reply
// tree materialized, from one flat query over the recipe's reviews.
func (r *ReviewRepository) GetTreesByRecipeID(recipeID uint) ([]model.Review, error) {
	var rows []model.Review
	if err := r.db.Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	arena := make([]*model.Review, 0, len(rows))
	for i := range rows {
		arena = append(arena, &rows[i])
	}
	assembleReplies(arena)

	roots := make([]model.Review, 0)
	for _, node := range arena {
		if node.ParentID == nil {
			roots = append(roots, *node)
		}
	}
	return roots, nil
}

// CountByRecipeID returns the number of reviews (roots and replies) a
// recipe has
func (r *ReviewRepository) CountByRecipeID(recipeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("recipe_id = ?", recipeID).Count(&count).Error
	return count, err
}

// DeleteTree deletes a review and its entire reply subtree in one
// transaction. Returns gorm.ErrRecordNotFound when the root is missing.
func (r *ReviewRepository) DeleteTree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return r.DeleteTreeTx(tx, id)
	})
}

// DeleteTreeTx deletes a review subtree inside the caller's transaction.
// Descendants are gathered with a breadth-first worklist, then rows are
// removed strictly children-before-parent so the parent foreign key is
// never violated mid-walk.
func (r *ReviewRepository) DeleteTreeTx(tx *gorm.DB, id uint) error {
	var root model.Review
	if err := tx.Select("id").First(&root, id).Error; err != nil {
		return err
	}

	descendants, err := r.collectDescendants(tx, []uint{id})
	if err != nil {
		return err
	}

	children := make(map[uint][]uint)
	for _, node := range descendants {
		children[*node.ParentID] = append(children[*node.ParentID], node.ID)
	}

	for _, nodeID := range deleteOrder(id, children) {
		if err := tx.Delete(&model.Review{}, nodeID).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteByRecipeTx deletes every review of a recipe inside the caller's
// transaction, each tree children-first.
func (r *ReviewRepository) DeleteByRecipeTx(tx *gorm.DB, recipeID uint) error {
	var rows []model.Review
	if err := tx.Select("id", "parent_id").
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	children := make(map[uint][]uint)
	var roots []uint
	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row.ID)
		} else {
			children[*row.ParentID] = append(children[*row.ParentID], row.ID)
		}
	}

	for _, rootID := range roots {
		for _, nodeID := range deleteOrder(rootID, children) {
			if err := tx.Delete(&model.Review{}, nodeID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// AuthoredReviewIDsTx lists ids of reviews written by a user, inside the
// caller's transaction
func (r *ReviewRepository) AuthoredReviewIDsTx(tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.Review{}).Where("user_id = ?", userID).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// ExistsTx reports whether a review row still exists, inside the caller's
// transaction
func (r *ReviewRepository) ExistsTx(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&model.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// collectDescendants walks parent -> children level by level starting
// from rootIDs, returning every descendant (the roots themselves are not
// included). Each level is one query, so the statement count is bounded
// by the tree depth rather than the node count.
func (r *ReviewRepository) collectDescendants(db *gorm.DB, rootIDs []uint) ([]model.Review, error) {
	var all []model.Review
	frontier := rootIDs
	for len(frontier) > 0 {
		var batch []model.Review
		if err := db.Preload("User").
			Where("parent_id IN ?", frontier).
			Order("id ASC").
			Find(&batch).Error; err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		frontier = frontier[:0]
		for _, node := range batch {
			frontier = append(frontier, node.ID)
		}
	}
	return all, nil
}

// assembleReplies materializes the Replies slices of every node in the
// arena. Nodes are visited in descending id order: a reply always has a
// larger id than its parent (a parent must exist before a reply is
// created), so each node's subtree is complete by the time the node
// itself is attached.
func assembleReplies(arena []*model.Review) {
	children := make(map[uint][]*model.Review)
	for _, node := range arena {
		if node.ParentID != nil {
			children[*node.ParentID] = append(children[*node.ParentID], node)
		}
	}

	sorted := make([]*model.Review, len(arena))
	copy(sorted, arena)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	for _, node := range sorted {
		kids := children[node.ID]
		if len(kids) == 0 {
			continue
		}
		sort.Slice(kids, func(i, j int) bool { return kids[i].ID < kids[j].ID })
		node.Replies = make([]model.Review, 0, len(kids))
		for _, kid := range kids {
			node.Replies = append(node.Replies, *kid)
		}
	}
}

// deleteOrder flattens a subtree into a deletion sequence where every
// node appears before its parent. Reversing a stack-driven preorder walk
// gives that property without recursion.
func deleteOrder(rootID uint, children map[uint][]uint) []uint {
	stack := []uint{rootID}
	var order []uint
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)
		stack = append(stack, children[id]...)
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
