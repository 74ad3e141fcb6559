package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,Title,Twitter/Github,Website,Contact (mail),What am I building?,/whoami (description)
Jane Roe,Platform Engineer,@janeroe,https://jane.dev,jane@example.com,a build cache,I keep CI green
Aryan Pahwani,Maintainer,@aryanp,,aryan@example.com,this directory,built this widget
,Ghost Row,@ghost,,,,should be dropped
Sam Okafor,ML Engineer,,,,inference serving,GPU whisperer
`

func TestParse_NormalizesColumns(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3, "the nameless row must be dropped")

	jane := records[0]
	assert.Equal(t, "Jane Roe", jane.Name)
	assert.Equal(t, "Platform Engineer", jane.Title)
	assert.Equal(t, "@janeroe", jane.SocialLink)
	assert.Equal(t, "https://jane.dev", jane.Website)
	assert.Equal(t, "jane@example.com", jane.Contact)
	assert.Equal(t, "a build cache", jane.CurrentProject)
	assert.Equal(t, "I keep CI green", jane.SelfDescription)
}

func TestParse_HeaderAliases(t *testing.T) {
	csv := "name,title,social,website,contact,currently building,description\n" +
		"Jane Roe,Engineer,@j,https://j.dev,j@x.com,tooling,builds tools\n"

	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "tooling", records[0].CurrentProject)
	assert.Equal(t, "builds tools", records[0].SelfDescription)
	assert.Equal(t, "@j", records[0].SocialLink)
}

func TestParse_UnknownColumnsIgnored(t *testing.T) {
	csv := "Name,Favorite Color,Title\nJane Roe,teal,Engineer\n"

	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Roe", records[0].Name)
	assert.Equal(t, "Engineer", records[0].Title)
}

func TestParse_RaggedRows(t *testing.T) {
	csv := "Name,Title,Website\nJane Roe,Engineer\nSam Okafor,ML Engineer,https://sam.dev,extra-cell\n"

	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Website)
	assert.Equal(t, "https://sam.dev", records[1].Website)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	csv := "Name,Title\n  Jane Roe  ,  Engineer  \n"

	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Roe", records[0].Name)
	assert.Equal(t, "Engineer", records[0].Title)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader("Name,Title\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestURLLoader_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	loader := NewURLLoader(srv.URL)
	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestURLLoader_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	loader := NewURLLoader(srv.URL)
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := NewFileLoader("/nonexistent/roster.csv")
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoader_NoSource(t *testing.T) {
	l := &Loader{}
	_, err := l.Load(context.Background())
	assert.Error(t, err)
}
