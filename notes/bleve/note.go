package bleve

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/search/query"

	"github.com/Allan0411/Notes-API/notes"
)

// NoteIndex is a bleve full-text index over note titles and text.
type NoteIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it if it does not exist yet.
func (s *NoteIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		em := bleve.NewTextFieldMapping()
		em.Analyzer = en.AnalyzerName
		dm := bleve.NewDocumentMapping()
		dm.AddFieldMappingsAt("title", em)
		dm.AddFieldMappingsAt("text", em)

		mapping := bleve.NewIndexMapping()
		mapping.AddDocumentMapping("note", dm)
		index, err = bleve.New(path, mapping)
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *NoteIndex) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

func (s *NoteIndex) Index(note *notes.Note) error {
	data := map[string]interface{}{
		"title": note.Title,
		"text":  note.TextContents,
	}
	return s.index.Index(strconv.Itoa(note.ID), data)
}

func (s *NoteIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

func (s *NoteIndex) Search(q string, ids []int) ([]int, error) {
	full := andQ(
		query.NewMatchAllQuery(),
		s.searchTitleOrText(q),
		s.searchIDs(ids),
	)

	searchRequest := bleve.NewSearchRequest(full)
	searchRequest.SortBy([]string{"_id"})
	searchRequest.Size = 100

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		out[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

func (s *NoteIndex) searchTitleOrText(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.prefixQuery(word, "title"),
			s.prefixQuery(word, "text"),
		))
	}

	return andQ(ands...)
}

func (s *NoteIndex) prefixQuery(queryString, field string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(en.AnalyzerName)
	tokens := analyzer.Analyze([]byte(queryString))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = &query.PrefixQuery{
			Prefix:   string(token.Term),
			FieldVal: field,
		}
	}

	return query.NewConjunctionQuery(conjuncs)
}

func (*NoteIndex) searchIDs(ids []int) query.Query {
	docIDs := make([]string, len(ids))
	for i, id := range ids {
		docIDs[i] = strconv.Itoa(id)
	}
	return query.NewDocIDQuery(docIDs)
}
