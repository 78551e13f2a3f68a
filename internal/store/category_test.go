package store

import (
	"errors"
	"testing"

	"mozaik/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCategoryStore_CreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() { cleanCategories(t, db, "test-cat-zdravlje", "test-cat-zdravlje-recepti") })

	parent, err := s.Create(&models.Category{
		Name:        "Test Zdravlje",
		Slug:        "test-cat-zdravlje",
		Description: strPtr("testna kategorija"),
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if parent.ParentID != nil {
		t.Errorf("parent.ParentID = %v, want nil", parent.ParentID)
	}

	child, err := s.Create(&models.Category{
		Name:     "Test Recepti",
		Slug:     "test-cat-zdravlje-recepti",
		ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	found, err := s.FindBySlug("test-cat-zdravlje-recepti")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if found == nil || found.ID != child.ID {
		t.Errorf("FindBySlug = %v, want child %v", found, child.ID)
	}
	if found.ParentID == nil || *found.ParentID != parent.ID {
		t.Errorf("child ParentID = %v, want %v", found.ParentID, parent.ID)
	}
}

func TestCategoryStore_FindBySlug_NotFound(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	found, err := s.FindBySlug("no-such-slug-anywhere")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if found != nil {
		t.Errorf("FindBySlug = %v, want nil for unknown slug", found)
	}
}

// TestCategoryStore_RejectsNesting verifies the two-level rule: a
// subcategory cannot become a parent.
func TestCategoryStore_RejectsNesting(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanCategories(t, db, "test-nest-parent", "test-nest-child", "test-nest-grandchild")
	})

	parent, err := s.Create(&models.Category{Name: "Nest Parent", Slug: "test-nest-parent"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := s.Create(&models.Category{Name: "Nest Child", Slug: "test-nest-child", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	_, err = s.Create(&models.Category{Name: "Nest Grandchild", Slug: "test-nest-grandchild", ParentID: &child.ID})
	if !errors.Is(err, ErrNestedSubcategory) {
		t.Errorf("creating grandchild: err = %v, want ErrNestedSubcategory", err)
	}
}

// TestCategoryStore_DeleteCascadesAndOrphansArticles verifies the
// delete policy: subcategories are removed with their parent, while
// referencing articles survive uncategorized.
func TestCategoryStore_DeleteCascadesAndOrphansArticles(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	arts := NewArticleStore(db)
	t.Cleanup(func() {
		cleanArticles(t, db, "test-del-article")
		cleanCategories(t, db, "test-del-parent", "test-del-parent-tag")
	})

	parent, err := cats.Create(&models.Category{Name: "Del Parent", Slug: "test-del-parent"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := cats.Create(&models.Category{Name: "Del Tag", Slug: "test-del-parent-tag", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	article, err := arts.Create(&models.Article{
		Title:      "Del Article",
		Slug:       "test-del-article",
		CategoryID: &child.ID,
		Status:     models.ArticleStatusPublished,
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	if err := cats.Delete(parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	if got, _ := cats.FindByID(child.ID); got != nil {
		t.Errorf("child survived parent delete: %v", got)
	}

	survivor, err := arts.FindByID(article.ID)
	if err != nil {
		t.Fatalf("find article: %v", err)
	}
	if survivor == nil {
		t.Fatal("article deleted with category, want it orphaned")
	}
	if survivor.CategoryID != nil {
		t.Errorf("article CategoryID = %v after category delete, want nil", survivor.CategoryID)
	}
}

func TestCategoryStore_ListOrderedByName(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	t.Cleanup(func() { cleanCategories(t, db, "test-ord-bb", "test-ord-aa") })

	if _, err := s.Create(&models.Category{Name: "Ord BB", Slug: "test-ord-bb"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(&models.Category{Name: "Ord AA", Slug: "test-ord-aa"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	posAA, posBB := -1, -1
	for i, c := range all {
		switch c.Slug {
		case "test-ord-aa":
			posAA = i
		case "test-ord-bb":
			posBB = i
		}
	}
	if posAA == -1 || posBB == -1 {
		t.Fatal("created categories missing from List()")
	}
	if posAA > posBB {
		t.Errorf("List() order: %q after %q, want name order", "Ord AA", "Ord BB")
	}
}
