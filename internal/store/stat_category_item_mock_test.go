// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"backoffice/internal/models"
)

// mockStore returns an item store backed by sqlmock. These tests pin the
// guard-query behavior without a live database.
func mockStore(t *testing.T) (*StatCategoryItemStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStatCategoryItemStore(db), mock
}

func TestCreateRejectsInvalidInputWithoutQuerying(t *testing.T) {
	s, mock := mockStore(t)

	// No expectations registered: any database access fails the test.
	in := StatCategoryItemInput{CategoryID: uuid.New(), Name: "", Label: "x", Status: models.StatusActive}
	_, err := s.Create(&in, uuid.New())
	if got := fieldCode(err); got != models.ErrCodeRequired {
		t.Errorf("got code %q, want %q", got, models.ErrCodeRequired)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestCreateStopsAtNameConflict(t *testing.T) {
	s, mock := mockStore(t)

	categoryID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM stat_categories WHERE id = $1)`)).
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM stat_category_items WHERE category_id = $1 AND name = $2)`)).
		WithArgs(categoryID, "Taken").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	in := StatCategoryItemInput{CategoryID: categoryID, Name: "Taken", Label: "Taken", Status: models.StatusActive}
	_, err := s.Create(&in, uuid.New())
	if got := fieldCode(err); got != models.ErrCodeNameConflict {
		t.Errorf("got code %q, want %q", got, models.ErrCodeNameConflict)
	}
	// No INSERT may follow a conflict.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestNextSortOrderEmptyCategory(t *testing.T) {
	s, mock := mockStore(t)

	categoryID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM stat_category_items WHERE category_id = $1`)).
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	next, err := s.nextSortOrder(categoryID)
	if err != nil {
		t.Fatalf("nextSortOrder: %v", err)
	}
	if next != 0 {
		t.Errorf("got %d, want 0 for empty category", next)
	}
}

func TestCheckParentCategoryMismatch(t *testing.T) {
	s, mock := mockStore(t)

	parentID := uuid.New()
	otherCategory := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT category_id FROM stat_category_items WHERE id = $1`)).
		WithArgs(parentID).
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(otherCategory))

	err := s.checkParent(parentID, uuid.New())
	if got := fieldCode(err); got != models.ErrCodeParentCategoryMismatch {
		t.Errorf("got code %q, want %q", got, models.ErrCodeParentCategoryMismatch)
	}
}

func TestWouldCycleWalksAncestors(t *testing.T) {
	s, mock := mockStore(t)

	item := uuid.New()
	parent := uuid.New()
	grandparent := uuid.New()

	// parent -> grandparent -> item closes the loop.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT parent_id FROM stat_category_items WHERE id = $1`)).
		WithArgs(parent).
		WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(grandparent))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT parent_id FROM stat_category_items WHERE id = $1`)).
		WithArgs(grandparent).
		WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(item))

	cycle, err := s.wouldCycle(item, parent)
	if err != nil {
		t.Fatalf("wouldCycle: %v", err)
	}
	if !cycle {
		t.Error("expected cycle to be detected")
	}
}

func TestWouldCycleStopsAtRoot(t *testing.T) {
	s, mock := mockStore(t)

	item := uuid.New()
	parent := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT parent_id FROM stat_category_items WHERE id = $1`)).
		WithArgs(parent).
		WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(nil))

	cycle, err := s.wouldCycle(item, parent)
	if err != nil {
		t.Fatalf("wouldCycle: %v", err)
	}
	if cycle {
		t.Error("no cycle expected for a root parent")
	}
}

func TestDeleteRefusedWithChildrenRunsNoDelete(t *testing.T) {
	s, mock := mockStore(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM stat_category_items WHERE parent_id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := s.Delete(id)
	if got := fieldCode(err); got != models.ErrCodeHasChildren {
		t.Errorf("got code %q, want %q", got, models.ErrCodeHasChildren)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReorderRollsBackOnUnknownItem(t *testing.T) {
	s, mock := mockStore(t)

	known := uuid.New()
	unknown := uuid.New()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`UPDATE stat_category_items SET sort_order = $1, updated_at = $2`))
	prep.ExpectExec().
		WithArgs(1, sqlmock.AnyArg(), known).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(2, sqlmock.AnyArg(), unknown).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Reorder([]ReorderPair{
		{ID: known, SortOrder: 1},
		{ID: unknown, SortOrder: 2},
	})
	if got := fieldCode(err); got != models.ErrCodeItemNotFound {
		t.Errorf("got code %q, want %q", got, models.ErrCodeItemNotFound)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReorderRejectsNegativeOrderUpFront(t *testing.T) {
	s, mock := mockStore(t)

	err := s.Reorder([]ReorderPair{{ID: uuid.New(), SortOrder: -1}})
	if got := fieldCode(err); got != models.ErrCodeInvalid {
		t.Errorf("got code %q, want %q", got, models.ErrCodeInvalid)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}
