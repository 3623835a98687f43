package types

import (
	"errors"
	"strings"
	"testing"
)

func TestResultConstructors(t *testing.T) {
	ok := ResultSuccess()
	if !ok.Succeeded() || ok.State != Success || ok.Message != "" {
		t.Fatalf("Unexpected success result %#v", ok)
	}

	failed := ResultError(errors.New("push denied"))
	if failed.Succeeded() || failed.State != HasError {
		t.Fatalf("Unexpected error result %#v", failed)
	}
	if failed.Message != "push denied" {
		t.Fatalf("Unexpected message %q", failed.Message)
	}
}

func TestErrRecipeLocationMessages(t *testing.T) {
	none := ErrRecipeLocation{Dir: "/ws", Count: 0}
	if !strings.Contains(none.Error(), "no Dockerfile") {
		t.Fatalf("Unexpected message %q", none.Error())
	}

	many := ErrRecipeLocation{Dir: "/ws", Count: 3}
	if !strings.Contains(many.Error(), "3 Dockerfiles") {
		t.Fatalf("Unexpected message %q", many.Error())
	}
}

func TestErrImageTagMessage(t *testing.T) {
	err := ErrImageTag{Tag: "app:1", Err: errors.New("no such image")}
	if err.Error() != "could not tag 'app:1': no such image" {
		t.Fatalf("Unexpected message %q", err.Error())
	}
}
