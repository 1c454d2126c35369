package entity

import (
	"errors"
	"reflect"
	"testing"
)

type profile struct {
	baseRecord
	Nickname *string `column:"nickname"`
	Score    float64 `column:"score"`
	Enabled  bool    `column:"enabled"`
	Password string  `column:"password" map:"-"`
	Note     string
}

func TestMarshalToMap(t *testing.T) {
	t.Parallel()
	m := MustNewModel(profile{})
	nick := "tan"
	p := profile{Nickname: &nick, Score: 1.5, Password: "secret", Note: "n"}
	p.Id = 3
	p.CreatedBy = "admin"

	got, err := m.MarshalToMap(p, true)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"nickname":   "tan",
		"score":      1.5,
		"enabled":    false,
		"Note":       "n",
		"id":         3,
		"created_by": "admin",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarshalToMap(true) = %v, want %v", got, want)
	}

	got, err = m.MarshalToMap(&profile{}, false)
	if err != nil {
		t.Fatal(err)
	}
	want = map[string]interface{}{
		"nickname": nil,
		"score":    0.0,
		"enabled":  false,
		"Note":     "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarshalToMap(false) = %v, want %v", got, want)
	}
}

func TestUnmarshalFromMap(t *testing.T) {
	t.Parallel()
	m := MustNewModel(profile{})

	var p profile
	p.CreatedBy = "keep"
	err := m.UnmarshalFromMap(&p, map[string]interface{}{
		"Nickname":  []byte("tan"),
		"Score":     2,
		"Enabled":   int64(1),
		"Password":  "ignored",
		"Id":        float64(9),
		"CreatedBy": nil,
		"Unknown":   1,
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if p.Nickname == nil || *p.Nickname != "tan" {
		t.Errorf("Nickname = %v", p.Nickname)
	}
	if p.Score != 2 || !p.Enabled || p.Id != 9 {
		t.Errorf("unexpected values %+v", p)
	}
	if p.Password != "" {
		t.Error("ignored field should not be set")
	}
	if p.CreatedBy != "keep" {
		t.Error("nil values should leave fields untouched")
	}

	var q profile
	if err := m.UnmarshalFromMap(&q, map[string]interface{}{"Id": 5}, false); err != nil {
		t.Fatal(err)
	}
	if q.Id != 0 {
		t.Error("inherited fields should not be set when inherit is false")
	}
}

func TestUnmarshalFromMapErrors(t *testing.T) {
	t.Parallel()
	m := MustNewModel(profile{})

	if err := m.UnmarshalFromMap(profile{}, nil, true); !errors.Is(err, ErrMustBePointer) {
		t.Errorf("error = %v, want ErrMustBePointer", err)
	}

	var p profile
	err := m.UnmarshalFromMap(&p, map[string]interface{}{"Score": "high"}, true)
	var aerr *AssignError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v, want *AssignError", err)
	}
	if aerr.Field != "Score" {
		t.Errorf("Field = %s, want Score", aerr.Field)
	}

	err = m.UnmarshalFromMap(&p, map[string]interface{}{"Note": 65}, true)
	if !errors.As(err, &aerr) {
		t.Errorf("numbers should not become strings, got %v", err)
	}
}

type shadowingProfile struct {
	profile
	Nickname string `column:"nickname"`
	Alias    string `column:"full_name"`
	Ref      *int   `pk:"ref_id"`
}

func TestMarshalToMapColumnNames(t *testing.T) {
	t.Parallel()
	m := MustNewModel(shadowingProfile{})
	nick := "inner"
	ref := 4
	p := shadowingProfile{Nickname: "outer", Alias: "x", Ref: &ref}
	p.profile.Nickname = &nick

	got, err := m.MarshalToMap(&p, true)
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]interface{}{
		"nickname":  "outer",
		"full_name": "x",
		"ref_id":    4,
	}
	for column, want := range tests {
		if got[column] != want {
			t.Errorf("%s = %v, want %v", column, got[column], want)
		}
	}
	for _, name := range []string{"Nickname", "Alias", "Ref"} {
		if _, ok := got[name]; ok {
			t.Errorf("unexpected field name key %s", name)
		}
	}
}

// column names equal field names, so the map goes both ways
type plainRecord struct {
	Name  *string `column:"Name"`
	Count int     `column:"Count"`
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	m := MustNewModel(plainRecord{})
	name := "Tanvir"
	data, err := m.MarshalToMap(plainRecord{Name: &name, Count: 28}, true)
	if err != nil {
		t.Fatal(err)
	}
	var r plainRecord
	if err := m.UnmarshalFromMap(&r, data, true); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r, plainRecord{Name: &name, Count: 28}) {
		t.Errorf("got %+v", r)
	}
}
