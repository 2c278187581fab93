package ocr

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

func TestBlocksToFragments(t *testing.T) {
	blocks := []types.Block{
		{BlockType: types.BlockTypePage},
		{BlockType: types.BlockTypeLine, Text: aws.String("Hello World"), Confidence: aws.Float32(99.2)},
		{BlockType: types.BlockTypeWord, Text: aws.String("Hello"), Confidence: aws.Float32(99.5)},
		{BlockType: types.BlockTypeWord, Text: aws.String("World"), Confidence: aws.Float32(98.9)},
	}

	fragments := blocksToFragments(blocks)

	if len(fragments) != 4 {
		t.Fatalf("fragments = %d, want 4", len(fragments))
	}

	want := []Fragment{
		{Category: CategoryPage, Text: "", Confidence: 0},
		{Category: CategoryLine, Text: "Hello World", Confidence: 99.2},
		{Category: CategoryWord, Text: "Hello", Confidence: 99.5},
		{Category: CategoryWord, Text: "World", Confidence: 98.9},
	}
	for i, f := range fragments {
		if f != want[i] {
			t.Errorf("fragment[%d] = %+v, want %+v", i, f, want[i])
		}
	}
}

func TestBlocksToFragments_Empty(t *testing.T) {
	if got := blocksToFragments(nil); len(got) != 0 {
		t.Errorf("fragments = %d, want 0", len(got))
	}
}

func TestBlocksToFragments_NilText(t *testing.T) {
	// PAGE blocks carry no text pointer; the fragment text must stay empty
	// rather than panicking.
	fragments := blocksToFragments([]types.Block{{BlockType: types.BlockTypePage, Text: nil}})
	if fragments[0].Text != "" {
		t.Errorf("text = %q, want empty", fragments[0].Text)
	}
}
