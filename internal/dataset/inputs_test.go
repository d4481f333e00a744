package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"news-event-returns/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestReadStoriesParsesAndFilters(t *testing.T) {
	path := writeFile(t, "stories.csv",
		"story_id,ticker,headline,label,score,timestamp_utc\n"+
			"s1,AAPL,Apple beats,positive,1.0,2024-06-03T14:31:00Z\n"+
			"s2,,Orphan story,negative,0.0,2024-06-03T15:00:00Z\n"+
			"s3,MSFT,Naive stamp,unknown,0.5,2024-06-03 15:00:00\n")

	stories, err := ReadStories(path, time.UTC)
	if err != nil {
		t.Fatalf("ReadStories: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("got %d stories, want 2 (empty ticker dropped)", len(stories))
	}
	if stories[0].ID != "s1" || stories[0].Score != 1.0 {
		t.Errorf("unexpected first story %+v", stories[0])
	}
	if !stories[1].Timestamp.Equal(time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("naive timestamp parsed as %v", stories[1].Timestamp)
	}
}

func TestReadStoriesMissingColumnIsFatal(t *testing.T) {
	path := writeFile(t, "stories.csv",
		"story_id,ticker,headline,label,timestamp_utc\n"+
			"s1,AAPL,No score here,positive,2024-06-03T14:31:00Z\n")

	_, err := ReadStories(path, time.UTC)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Table != "stories" || schemaErr.Column != "score" {
		t.Errorf("SchemaError = %+v, want stories/score", schemaErr)
	}
}

func TestReadDailyPricesAcceptsVendorColumnNames(t *testing.T) {
	path := writeFile(t, "prices.csv",
		"date,ticker,openprc,closeprc\n"+
			"2024-06-03,AAPL,-100,-102\n")

	rows, err := ReadDailyPrices(path)
	if err != nil {
		t.Fatalf("ReadDailyPrices: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	// Raw signs pass through; normalization belongs to the indexer.
	if rows[0].Open != -100 || rows[0].Close != -102 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestReadMinuteQuotesBuildsTickerFromSymRoot(t *testing.T) {
	path := writeFile(t, "quotes.csv",
		"date,sym_root,sym_suffix,minute_ts,mid\n"+
			"2024-06-03,BRK,B,2024-06-03 09:45:00,412.5\n"+
			"2024-06-03,AAPL,,2024-06-03 09:45:00,195.1\n")

	rows, err := ReadMinuteQuotes(path)
	if err != nil {
		t.Fatalf("ReadMinuteQuotes: %v", err)
	}
	if rows[0].Ticker != "BRKB" {
		t.Errorf("ticker = %s, want BRKB", rows[0].Ticker)
	}
	if rows[1].Ticker != "AAPL" {
		t.Errorf("ticker = %s, want AAPL", rows[1].Ticker)
	}
	if rows[0].Minute != 9*60+45 {
		t.Errorf("minute = %d, want %d", rows[0].Minute, 9*60+45)
	}
}

func TestReadMinuteQuotesMissingMidIsFatal(t *testing.T) {
	path := writeFile(t, "quotes.csv",
		"date,ticker,minute_ts\n"+
			"2024-06-03,AAPL,2024-06-03 09:45:00\n")

	_, err := ReadMinuteQuotes(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "mid" {
		t.Errorf("column = %s, want mid", schemaErr.Column)
	}
}

func TestReadStoryIndex(t *testing.T) {
	path := writeFile(t, "index.csv",
		"story_id,ticker,date,is_intraday,target_minute\n"+
			"s1,AAPL,2024-06-03,true,09:46\n"+
			"s2,AAPL,2024-06-04,false,\n")

	idx, err := ReadStoryIndex(path)
	if err != nil {
		t.Fatalf("ReadStoryIndex: %v", err)
	}

	entry, ok := idx[[2]string{"s1", "AAPL"}]
	if !ok {
		t.Fatal("s1 not indexed")
	}
	if !entry.IsIntraday || entry.TargetMinute != 9*60+46 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Date != (types.Date{Year: 2024, Month: time.June, Day: 3}) {
		t.Errorf("date = %v", entry.Date)
	}

	overnight := idx[[2]string{"s2", "AAPL"}]
	if overnight.IsIntraday || overnight.TargetMinute != -1 {
		t.Errorf("overnight entry = %+v", overnight)
	}
}

func TestUnsupportedExtensionRejected(t *testing.T) {
	path := writeFile(t, "stories.json", `[]`)
	if _, err := ReadStories(path, time.UTC); err == nil {
		t.Error("expected an error for unsupported table format")
	}
}
