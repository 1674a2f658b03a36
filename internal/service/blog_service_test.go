package service

import (
	"errors"
	"testing"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/model"
)

func TestBlogCreateAttachesAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlogService(db)
	author := createUser(t, db, "writer", false)

	blog, err := svc.Create(author.ID, "Hello", "first post")
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if blog.AuthorID != author.ID {
		t.Fatalf("author id = %d, want %d", blog.AuthorID, author.ID)
	}
}

func TestBlogUpdateByStrangerForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlogService(db)
	author := createUser(t, db, "writer", false)
	stranger := createUser(t, db, "stranger", false)

	blog, err := svc.Create(author.ID, "Hello", "first post")
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	_, err = svc.Update(stranger.ID, blog.ID, "Hacked", "gotcha")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger update err = %v, want ErrForbidden", err)
	}

	var reloaded model.Blog
	if err := db.First(&reloaded, blog.ID).Error; err != nil {
		t.Fatalf("reload blog: %v", err)
	}
	if reloaded.Title != "Hello" {
		t.Fatalf("blog mutated by stranger: %s", reloaded.Title)
	}
}

func TestBlogUpdateByAdminAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlogService(db)
	author := createUser(t, db, "writer", false)
	admin := createUser(t, db, "root", true)

	blog, err := svc.Create(author.ID, "Hello", "first post")
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	updated, err := svc.Update(admin.ID, blog.ID, "Moderated", "cleaned up")
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Moderated" {
		t.Fatalf("title = %s, want Moderated", updated.Title)
	}
}

func TestBlogDeleteByStrangerForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlogService(db)
	author := createUser(t, db, "writer", false)
	stranger := createUser(t, db, "stranger", false)

	blog, err := svc.Create(author.ID, "Hello", "first post")
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	if err := svc.Delete(stranger.ID, blog.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger delete err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(author.ID, blog.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	if err := svc.Delete(author.ID, blog.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing blog err = %v, want ErrNotFound", err)
	}
}
