// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

const testElements = `{"elements":[{"id":"headline","type":"text","x":5,"y":5,"width":90,"height":15,"text":"Hi"}],"brand":{"name":"Acme","colors":{"primary":"#111","secondary":"#222","accent":"#333"},"fonts":{"primary":"Inter","secondary":"Lora"},"tone":"bold"}}`

func TestPostStore_Lifecycle(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	u := testUser(t, db, "post-test@example.com")

	profile, err := NewBrandProfileStore(db).Create(&models.BrandProfile{UserID: u.ID, BrandName: "Acme", PrimaryColor: "#111"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	templates, err := NewTemplateStore(db).ListActive()
	if err != nil || len(templates) == 0 {
		t.Fatalf("templates: %v", err)
	}
	tmpl := templates[0]

	older, err := s.Create(&models.GeneratedPost{
		UserID:       u.ID,
		Platform:     models.PlatformInstagram,
		PromptUsed:   "first",
		ElementsJSON: json.RawMessage(testElements),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if older.IsFavorite || older.TemplateID != nil {
		t.Errorf("created post = %+v", older)
	}

	time.Sleep(10 * time.Millisecond)
	newer, err := s.Create(&models.GeneratedPost{
		UserID:         u.ID,
		TemplateID:     &tmpl.ID,
		BrandProfileID: &profile.ID,
		Platform:       tmpl.Platform,
		PromptUsed:     "second",
		ElementsJSON:   json.RawMessage(testElements),
	})
	if err != nil {
		t.Fatalf("Create with refs: %v", err)
	}

	posts, err := s.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != newer.ID {
		t.Fatalf("ListByUser order = %+v", posts)
	}
	if posts[0].Template == nil || posts[0].Template.Name != tmpl.Name {
		t.Errorf("template summary = %+v", posts[0].Template)
	}
	if posts[0].BrandProfile == nil || posts[0].BrandProfile.BrandName != "Acme" {
		t.Errorf("brand summary = %+v", posts[0].BrandProfile)
	}
	if posts[1].Template != nil || posts[1].BrandProfile != nil {
		t.Errorf("post without refs should have no summaries: %+v", posts[1])
	}

	found, err := s.FindByID(newer.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %+v, %v", found, err)
	}
	d, err := found.Design()
	if err != nil || d.Brand.Name != "Acme" {
		t.Errorf("stored design = %+v, %v", d, err)
	}

	if err := s.Delete(newer.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(newer.ID)
	if err != nil || gone != nil {
		t.Errorf("after delete FindByID = %+v, %v", gone, err)
	}
	if err := s.Delete(newer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestPostStore_ProfileDeletionKeepsPost(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	u := testUser(t, db, "post-setnull@example.com")

	profile, err := NewBrandProfileStore(db).Create(&models.BrandProfile{UserID: u.ID, BrandName: "Gone"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	post, err := s.Create(&models.GeneratedPost{
		UserID: u.ID, BrandProfileID: &profile.ID, Platform: models.PlatformTwitter,
		ElementsJSON: json.RawMessage(testElements),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := db.Exec("DELETE FROM brand_profiles WHERE id = $1", profile.ID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	got, err := s.FindByID(post.ID)
	if err != nil || got == nil {
		t.Fatalf("post disappeared with its profile: %+v, %v", got, err)
	}
	if got.BrandProfileID != nil || got.BrandProfile != nil {
		t.Errorf("brand reference should be cleared: %+v", got)
	}
	if d, err := got.Design(); err != nil || d.Brand.Name != "Acme" {
		t.Errorf("design should still render from its own JSON: %+v, %v", d, err)
	}
}

func TestPostStore_DeleteMissing(t *testing.T) {
	db := testDB(t)
	if err := NewPostStore(db).Delete(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestAgentLogStore_Append(t *testing.T) {
	db := testDB(t)
	s := NewAgentLogStore(db)
	u := testUser(t, db, "agentlog-test@example.com")

	design := models.Design{Brand: models.BrandSnapshot{Name: "Acme"}}
	if err := s.Append(u.ID, "DesignOrchestrator", "make a post", design); err != nil {
		t.Fatalf("Append: %v", err)
	}

	logs, err := s.ListByUser(u.ID, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(logs) != 1 || logs[0].AgentName != "DesignOrchestrator" || logs[0].InputPrompt != "make a post" {
		t.Fatalf("logs = %+v", logs)
	}
	var out models.Design
	if err := json.Unmarshal(logs[0].OutputJSON, &out); err != nil || out.Brand.Name != "Acme" {
		t.Errorf("output json = %s, %v", logs[0].OutputJSON, err)
	}
}
