// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-identity/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestRequesterCtxKey(t *testing.T) {
	if RequesterCtxKey.String() != "requester" {
		t.Errorf("expected 'requester', got '%s'", RequesterCtxKey.String())
	}
}

func TestGetRequesterFromContext_Success(t *testing.T) {
	want := models.Requester{Subject: "0190-user", Role: models.RoleAdmin}
	ctx := WithRequester(context.Background(), want)

	got, ok := GetRequesterFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetRequesterFromContext_Missing(t *testing.T) {
	got, ok := GetRequesterFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got != (models.Requester{}) {
		t.Errorf("expected zero requester, got %+v", got)
	}
}

func TestGetRequesterFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequesterCtxKey, "not-a-requester")

	if _, ok := GetRequesterFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestWithRequester_DoesNotMutateParent(t *testing.T) {
	parent := context.Background()
	_ = WithRequester(parent, models.Requester{Subject: "id"})

	if _, ok := GetRequesterFromContext(parent); ok {
		t.Fatal("parent context must not carry the requester")
	}
}
