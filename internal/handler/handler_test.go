package handler

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"textract-api/internal/ocr"
)

// fakeOCR returns canned fragments or a canned error and records calls.
type fakeOCR struct {
	fragments []ocr.Fragment
	err       error
	calls     []ocr.DocumentLocator
}

func (f *fakeOCR) DetectDocumentText(ctx context.Context, loc ocr.DocumentLocator) ([]ocr.Fragment, error) {
	f.calls = append(f.calls, loc)
	if f.err != nil {
		return nil, f.err
	}
	return f.fragments, nil
}

func request(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/process-image",
		Body:       body,
	}
}

func wantHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeOCR{fragments: []ocr.Fragment{
		{Category: ocr.CategoryPage, Text: ""},
		{Category: ocr.CategoryLine, Text: "Hello World"},
		{Category: ocr.CategoryWord, Text: "Hello"},
		{Category: ocr.CategoryWord, Text: "World"},
	}}
	h := New(svc)

	resp, err := h.Handle(context.Background(), request(`{"s3_url": "https://my-bucket.s3.us-east-1.amazonaws.com/docs/a.png"}`))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	want := "Hello World\nHello\nWorld\n"
	if body.Text != want {
		t.Errorf("text = %q, want %q", body.Text, want)
	}

	if len(svc.calls) != 1 {
		t.Fatalf("OCR calls = %d, want 1", len(svc.calls))
	}
	if svc.calls[0].Bucket != "my-bucket" || svc.calls[0].Key != "docs/a.png" {
		t.Errorf("locator = %+v, want my-bucket/docs/a.png", svc.calls[0])
	}
}

func TestHandle_LineAndWordDoubleInclusion(t *testing.T) {
	// A single-word line appears twice: once as the LINE, once as the WORD.
	svc := &fakeOCR{fragments: []ocr.Fragment{
		{Category: ocr.CategoryLine, Text: "Hello"},
		{Category: ocr.CategoryWord, Text: "Hello"},
	}}
	h := New(svc)

	resp, _ := h.Handle(context.Background(), request(`{"s3_url": "https://my-bucket.s3.us-east-1.amazonaws.com/docs/a.png"}`))
	want := `{"text":"Hello\nHello\n"}`
	if resp.Body != want {
		t.Errorf("body = %s, want %s", resp.Body, want)
	}
}

func TestHandle_FragmentFiltering(t *testing.T) {
	// Only LINE and WORD fragments contribute text; order is preserved.
	svc := &fakeOCR{fragments: []ocr.Fragment{
		{Category: ocr.CategoryPage, Text: "page-text"},
		{Category: ocr.CategoryWord, Text: "first"},
		{Category: ocr.Category("CELL"), Text: "cell-text"},
		{Category: ocr.CategoryLine, Text: "second"},
	}}
	h := New(svc)

	resp, _ := h.Handle(context.Background(), request(`{"s3_url": "https://b.s3.eu-west-1.amazonaws.com/k"}`))
	want := `{"text":"first\nsecond\n"}`
	if resp.Body != want {
		t.Errorf("body = %s, want %s", resp.Body, want)
	}
}

func TestHandle_NoFragments(t *testing.T) {
	h := New(&fakeOCR{})

	resp, _ := h.Handle(context.Background(), request(`{"s3_url": "https://b.s3.eu-west-1.amazonaws.com/k"}`))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Body != `{"text":""}` {
		t.Errorf("body = %s, want {\"text\":\"\"}", resp.Body)
	}
}

func TestHandle_InvalidS3URL(t *testing.T) {
	svc := &fakeOCR{}
	h := New(svc)

	resp, err := h.Handle(context.Background(), request(`{"s3_url": "not-a-url"}`))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Body != `{"error":"Invalid S3 URL format"}` {
		t.Errorf("body = %s", resp.Body)
	}
	if len(svc.calls) != 0 {
		t.Errorf("OCR was called for an invalid locator")
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "this is not json"},
		{"empty body", ""},
		{"missing field", `{"url": "https://b.s3.r.amazonaws.com/k"}`},
		{"wrong type", `{"s3_url": 42}`},
		{"empty field", `{"s3_url": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&fakeOCR{})

			resp, err := h.Handle(context.Background(), request(tt.body))
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if resp.StatusCode != 500 {
				t.Errorf("status = %d, want 500", resp.StatusCode)
			}

			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
				t.Fatalf("error body is not valid JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestHandle_CapabilityError(t *testing.T) {
	svc := &fakeOCR{err: errors.New("AccessDeniedException: not authorized")}
	h := New(svc)

	resp, err := h.Handle(context.Background(), request(`{"s3_url": "https://b.s3.us-east-1.amazonaws.com/k.png"}`))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
	if body.Error != "AccessDeniedException: not authorized" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestHandle_HeadersIdenticalAcrossPaths(t *testing.T) {
	success := New(&fakeOCR{fragments: []ocr.Fragment{{Category: ocr.CategoryLine, Text: "x"}}})
	failure := New(&fakeOCR{err: errors.New("boom")})

	req := request(`{"s3_url": "https://b.s3.us-east-1.amazonaws.com/k"}`)

	okResp, _ := success.Handle(context.Background(), req)
	errResp, _ := failure.Handle(context.Background(), req)
	badResp, _ := success.Handle(context.Background(), request("garbage"))

	for name, resp := range map[string]events.APIGatewayProxyResponse{
		"success":    okResp,
		"capability": errResp,
		"input":      badResp,
	} {
		if !reflect.DeepEqual(resp.Headers, wantHeaders()) {
			t.Errorf("%s headers = %v, want %v", name, resp.Headers, wantHeaders())
		}
	}
}

func TestHandle_Idempotent(t *testing.T) {
	svc := &fakeOCR{fragments: []ocr.Fragment{
		{Category: ocr.CategoryLine, Text: "Invoice 42"},
		{Category: ocr.CategoryWord, Text: "Invoice"},
		{Category: ocr.CategoryWord, Text: "42"},
	}}
	h := New(svc)
	req := request(`{"s3_url": "https://b.s3.us-east-1.amazonaws.com/inv.png"}`)

	first, _ := h.Handle(context.Background(), req)
	second, _ := h.Handle(context.Background(), req)

	if first.Body != second.Body || first.StatusCode != second.StatusCode {
		t.Errorf("responses differ: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Headers, second.Headers) {
		t.Errorf("headers differ: %v vs %v", first.Headers, second.Headers)
	}
}

func TestFallbackBodyIsValidJSON(t *testing.T) {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(fallbackBody), &body); err != nil {
		t.Fatalf("fallback body is not valid JSON: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Errorf("fallback error = %q", body.Error)
	}
}
