package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestGet(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := NewClient(time.Second, zap.NewNop(), WithUserAgent("timetable-test"))
	body, err := c.Get(context.Background(), srv.URL+"/file.xls")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("Expected payload, got %q", body)
	}
	if gotAgent != "timetable-test" {
		t.Errorf("Expected custom user agent, got %q", gotAgent)
	}
}

func TestGetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(time.Second, nil).Get(context.Background(), srv.URL+"/missing.xls")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", statusErr.StatusCode)
	}
}

func TestGetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewClient(50*time.Millisecond, nil).Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestGetBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	_, err := NewClient(time.Second, nil, WithMaxBytes(16)).Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected body limit error")
	}
}

const listingPage = `<html><body>
<ul>
  <li><a href="files/group 1.xls">Расписание <b>1 курс</b></a></li>
  <li><a href="/files/group2.XLSX">2 курс</a></li>
  <li><a href="files/group 1.xls">duplicate</a></li>
  <li><a href="https://other.example/files/x.xls">foreign</a></li>
  <li><a href="files/readme.pdf">readme</a></li>
  <li><a>no href</a></li>
</ul>
</body></html>`

func TestParseLinks(t *testing.T) {
	links, err := ParseLinks(strings.NewReader(listingPage), "http://college.example/schedule/", DefaultExtensions)
	if err != nil {
		t.Fatalf("ParseLinks failed: %v", err)
	}

	expected := []Link{
		{URL: "http://college.example/schedule/files/group%201.xls", Text: "Расписание 1 курс"},
		{URL: "http://college.example/files/group2.XLSX", Text: "2 курс"},
	}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("ParseLinks = %+v, expected %+v", links, expected)
	}
}

func TestLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="/a.xls">A</a><a href="/b.xlsx">B</a>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(time.Second, nil, WithExtensions(".xls"))
	links, err := c.Links(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("Links failed: %v", err)
	}
	if len(links) != 1 || links[0].URL != srv.URL+"/a.xls" || links[0].Text != "A" {
		t.Errorf("Unexpected links %+v", links)
	}
}

func TestIsScheduleLink(t *testing.T) {
	page := "https://college.example/schedule"

	tests := []struct {
		link     string
		expected bool
	}{
		{"https://college.example/files/a.xls", true},
		{"https://college.example/files/a b.xlsx", true},
		{"http://college.example/files/a.xls", false},
		{"https://evil.example/files/a.xls", false},
		{"https://college.example/files/a.pdf", false},
		{"files/a.xls", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsScheduleLink(tt.link, page, DefaultExtensions); got != tt.expected {
			t.Errorf("IsScheduleLink(%q) = %v, expected %v", tt.link, got, tt.expected)
		}
	}
}
