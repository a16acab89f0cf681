package validation

import (
	"testing"

	"github.com/datatrail-io/datatrail/internal/types"
)

func fieldErrorFor(errs []FieldError, field string) *FieldError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}
	return nil
}

func TestDatasetCreateValid(t *testing.T) {
	errs := Struct(&DatasetCreate{
		Name:        "cifar-10",
		Description: "labelled images",
		Size:        "160 MB",
		ContentID:   "QmCifar",
	})
	if errs != nil {
		t.Errorf("Expected valid payload, got errors: %v", errs)
	}
}

func TestDatasetCreateMissingFields(t *testing.T) {
	errs := Struct(&DatasetCreate{Name: "only-name"})
	if len(errs) != 3 {
		t.Fatalf("Expected 3 field errors, got %d: %v", len(errs), errs)
	}

	for _, field := range []string{"description", "size", "contentId"} {
		fe := fieldErrorFor(errs, field)
		if fe == nil {
			t.Errorf("Expected an error for field %q, got %v", field, errs)
			continue
		}
		if fe.Message == "" {
			t.Errorf("Expected a message for field %q", field)
		}
	}
}

func TestDatasetCreateReportsJSONFieldNames(t *testing.T) {
	errs := Struct(&DatasetCreate{
		Name:        "x",
		Description: "y",
		Size:        "z",
	})
	if fe := fieldErrorFor(errs, "contentId"); fe == nil {
		t.Errorf("Expected field reported as contentId, got %v", errs)
	}
	if fe := fieldErrorFor(errs, "ContentID"); fe != nil {
		t.Error("Struct field names must not leak into error output")
	}
}

func TestModelCreateDescriptionOptional(t *testing.T) {
	errs := Struct(&ModelCreate{Name: "resnet", ContentID: "QmResnet"})
	if errs != nil {
		t.Errorf("Expected valid payload without description, got: %v", errs)
	}

	errs = Struct(&ModelCreate{Description: "no name or cid"})
	if len(errs) != 2 {
		t.Errorf("Expected 2 field errors, got %d: %v", len(errs), errs)
	}
}

func TestRelationshipCreateRequiresIDs(t *testing.T) {
	errs := Struct(&RelationshipCreate{})
	if len(errs) != 2 {
		t.Fatalf("Expected 2 field errors, got %d: %v", len(errs), errs)
	}
	if fieldErrorFor(errs, "datasetId") == nil || fieldErrorFor(errs, "modelId") == nil {
		t.Errorf("Expected datasetId and modelId errors, got %v", errs)
	}

	errs = Struct(&RelationshipCreate{
		DatasetID: types.FlexUint64(1),
		ModelID:   types.FlexUint64(2),
	})
	if errs != nil {
		t.Errorf("Expected valid payload, got: %v", errs)
	}
}

func TestStatusUpdateRejectsEmpty(t *testing.T) {
	if errs := Struct(&StatusUpdate{}); len(errs) != 1 {
		t.Errorf("Expected 1 field error for empty status, got %v", errs)
	}
	if errs := Struct(&StatusUpdate{Status: "verified"}); errs != nil {
		t.Errorf("Expected valid payload, got: %v", errs)
	}
}

func TestUserCredentialsBounds(t *testing.T) {
	errs := Struct(&UserCredentials{Username: "ab", Password: "pwd"})
	if len(errs) != 2 {
		t.Fatalf("Expected 2 field errors, got %d: %v", len(errs), errs)
	}

	if errs := Struct(&UserCredentials{Username: "alice", Password: "secret"}); errs != nil {
		t.Errorf("Expected valid credentials, got: %v", errs)
	}
}

func TestDatasetMetadataNestedErrors(t *testing.T) {
	errs := Struct(&DatasetMetadata{
		Name:        "corpus",
		Description: "web crawl",
		Info:        &MetadataInfo{Source: ""},
	})
	if errs != nil {
		t.Errorf("Empty optional info fields must pass, got: %v", errs)
	}

	errs = Struct(&DatasetMetadata{
		Description: "no name",
		Tags:        []string{"nlp", ""},
	})
	if fieldErrorFor(errs, "name") == nil {
		t.Errorf("Expected a name error, got %v", errs)
	}
	if fieldErrorFor(errs, "tags[1]") == nil {
		t.Errorf("Expected an error for the empty tag, got %v", errs)
	}
}
