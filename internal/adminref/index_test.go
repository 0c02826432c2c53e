package adminref

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TSCosta20/housing-project/internal/geoapi"
)

func newTestClient(server *httptest.Server) *geoapi.Client {
	return geoapi.NewClient(server.Client(), server.URL, 100)
}

func fixtureIndex() *Index {
	municipalities := []MunicipalityRecord{
		{District: "Lisboa", Municipality: "Cascais"},
		{District: "Lisboa", Municipality: "Lisboa"},
		{District: "Porto", Municipality: "Porto"},
		{District: "Faro", Municipality: "Faro"},
		{District: "Aveiro", Municipality: "Vila Nova"},
		{District: "Braga", Municipality: "Vila Nova"},
	}
	parishes := []ParishRecord{
		{District: "Lisboa", Municipality: "Cascais", Parish: "Estoril"},
		{District: "Lisboa", Municipality: "Cascais", Parish: "Alcabideche"},
		{District: "Lisboa", Municipality: "Lisboa", Parish: "Benfica"},
		{District: "Lisboa", Municipality: "Lisboa", Parish: "Santo António"},
		{District: "Faro", Municipality: "Faro", Parish: "Santo António"},
		{District: "Porto", Municipality: "Porto", Parish: "Paranhos"},
	}
	return NewIndex(municipalities, parishes)
}

func TestResolveLocation(t *testing.T) {
	idx := fixtureIndex()

	cases := []struct {
		name     string
		location string
		want     AdminKeys
	}{
		{
			name:     "parish and municipality",
			location: "Estoril, Cascais",
			want:     AdminKeys{Country: "pt", District: "lisboa", Municipality: "cascais", Parish: "estoril"},
		},
		{
			name:     "full triple",
			location: "Estoril, Cascais, Lisboa",
			want:     AdminKeys{Country: "pt", District: "lisboa", Municipality: "cascais", Parish: "estoril"},
		},
		{
			name:     "wrong district corrected through unique municipality",
			location: "Benfica, Lisboa, Porto",
			want:     AdminKeys{Country: "pt", District: "lisboa", Municipality: "lisboa", Parish: "benfica"},
		},
		{
			name:     "ambiguous municipality dropped",
			location: "Somewhere, Vila Nova, Coimbra",
			want:     AdminKeys{Country: "pt", Parish: "somewhere"},
		},
		{
			name:     "unique parish alone",
			location: "Paranhos",
			want:     AdminKeys{Country: "pt", District: "porto", Municipality: "porto", Parish: "paranhos"},
		},
		{
			name:     "ambiguous parish alone stays raw",
			location: "Santo António",
			want:     AdminKeys{Country: "pt", Parish: "santo antonio"},
		},
		{
			name:     "ambiguous parish scoped by municipality",
			location: "Santo António, Lisboa",
			want:     AdminKeys{Country: "pt", District: "lisboa", Municipality: "lisboa", Parish: "santo antonio"},
		},
		{
			name:     "diacritics and spacing normalized",
			location: "  SANTO  ANTÓNIO , Faro , Faro ",
			want:     AdminKeys{Country: "pt", District: "faro", Municipality: "faro", Parish: "santo antonio"},
		},
		{
			name:     "empty text",
			location: "",
			want:     AdminKeys{Country: "pt"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := idx.ResolveLocation(tc.location)
			if got != tc.want {
				t.Fatalf("got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestResolveLocationEmptyIndex(t *testing.T) {
	idx := NewIndex(nil, nil)
	if !idx.Empty() {
		t.Fatal("expected empty index")
	}

	// Without a reference set a two-segment location keeps its parsed keys.
	got := idx.ResolveLocation("Estoril, Cascais")
	want := AdminKeys{Country: "pt", Municipality: "cascais", Parish: "estoril"}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}

	// A three-segment location cannot validate its pair, so both drop.
	got = idx.ResolveLocation("Estoril, Cascais, Lisboa")
	want = AdminKeys{Country: "pt", Parish: "estoril"}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestBuildMapsDatasetFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/" + MunicipalityDataset + "/records":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"total_count": 1,
				"results": []map[string]any{
					{"con_name": "Cascais", "dis_name": "Lisboa"},
				},
			})
		case "/" + ParishDataset + "/records":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"total_count": 1,
				"results": []map[string]any{
					{"fre_name": []any{"Estoril"}, "con_name": "Cascais", "dis_name": "Lisboa"},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	idx := Build(context.Background(), client, nil)
	if idx.Empty() {
		t.Fatal("expected populated index")
	}
	got := idx.ResolveLocation("Estoril, Cascais")
	want := AdminKeys{Country: "pt", District: "lisboa", Municipality: "cascais", Parish: "estoril"}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestBuildFetchFailureYieldsEmptyIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	idx := Build(context.Background(), newTestClient(server), nil)
	if !idx.Empty() {
		t.Fatal("expected empty index on fetch failure")
	}
}
