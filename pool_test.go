package novelfmt

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit can exceed max",
			workers: MaxWorkers + 10,
			want:    MaxWorkers + 10,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs, MinWorkers), MaxWorkers),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs, MinWorkers), MaxWorkers),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestFormatter_FormatBatch(t *testing.T) {
	t.Parallel()

	f := newTestFormatter(t)

	chapters := make([]RawChapter, 40)
	for i := range chapters {
		chapters[i] = RawChapter{
			Title: fmt.Sprintf("第%d章", i+1),
			Body:  fmt.Sprintf("「第%d句。」\n\n正文%d。", i, i),
		}
	}

	for _, workers := range []int{0, 1, 3, 100} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			results := f.FormatBatch(context.Background(), chapters, workers)
			if len(results) != len(chapters) {
				t.Fatalf("got %d results, want %d", len(results), len(chapters))
			}

			for i, r := range results {
				if r.Err != nil {
					t.Fatalf("chapter %d error = %v", i, r.Err)
				}
				if r.Chapter.Title != chapters[i].Title {
					t.Errorf("result %d is for %q, want %q", i, r.Chapter.Title, chapters[i].Title)
				}
				if r.Result.Document.Title != chapters[i].Title {
					t.Errorf("result %d document title = %q", i, r.Result.Document.Title)
				}
				want := fmt.Sprintf("正文%d。", i)
				if got := r.Result.Paragraphs[1].Text; got != want {
					t.Errorf("result %d paragraph = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestFormatter_FormatBatch_Empty(t *testing.T) {
	t.Parallel()

	f := newTestFormatter(t)

	if got := f.FormatBatch(context.Background(), nil, 4); len(got) != 0 {
		t.Errorf("FormatBatch(nil) returned %d results", len(got))
	}
}

func TestFormatter_FormatBatch_Canceled(t *testing.T) {
	t.Parallel()

	f := newTestFormatter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := f.FormatBatch(ctx, []RawChapter{{Title: "a", Body: "x"}, {Title: "b", Body: "y"}}, 2)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
		}
		if r.Chapter.Title == "" {
			t.Errorf("result %d lost its chapter", i)
		}
	}
}
