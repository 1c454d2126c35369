package entity

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type defaultsEntity struct {
	__TABLE_NAME__ struct{} `table:"defaults"`

	Id     *int             `pk:"id,auto"`
	Count  *int             `column:"count" default:"18"`
	Ratio  *float32         `column:"ratio" default:"1.5"`
	Score  *float64         `column:"score" default:"2.25"`
	Active *bool            `column:"active" default:"true"`
	Born   *time.Time       `column:"born" type:"DATE" default:"2020-01-02 10:11:12"`
	Seen   *time.Time       `column:"seen" default:"25/12/2021 08:30" format:"02/01/2006 15:04"`
	Data   []byte           `column:"data" type:"BLOB" default:"abc"`
	Raw    []byte           `column:"raw" default:"xyz"`
	Price  *decimal.Decimal `column:"price" default:"9.99"`
	Key    *uuid.UUID       `column:"key" default:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Label  *string          `column:"label" default:"none"`
	Plain  *string          `column:"plain"`
	Broken *int             `column:"broken" default:"abc"`
}

type ticket struct {
	__TABLE_NAME__ struct{} `table:"tickets"`

	Flight   string          `pk:"flight"`
	Seat     int             `pk:"seat"`
	Class    string          `column:"class" default:"economy"`
	Price    decimal.Decimal `column:"price" default:"99.50"`
	Paid     bool            `column:"paid" default:"false"`
	IssuedAt *time.Time      `column:"issued_at"`
}

type prefixBlobs string

func (p prefixBlobs) CreateBlob(literal string) (interface{}, error) {
	return string(p) + literal, nil
}

func newPassenger(id, age int, name, sex string) *passenger {
	return &passenger{Id: &id, Age: &age, Name: &name, Sex: &sex}
}

func TestProperty(t *testing.T) {
	t.Parallel()
	m := MustNewModel(passenger{})
	p := newPassenger(7, 28, "Tanvir", "M")

	tests := []struct {
		name        string
		object      interface{}
		field       string
		skipPrimary bool
		want        *Property
	}{
		{"column", p, "Name", true, &Property{"name", "Tanvir"}},
		{"field name is trimmed", p, " Age ", true, &Property{"age", 28}},
		{"value object", *p, "Sex", true, &Property{"sex", "M"}},
		{"primary key skipped", p, "Id", true, nil},
		{"primary key", p, "Id", false, &Property{"id", 7}},
		{"nil value", &passenger{}, "Name", true, &Property{"name", nil}},
		{"nil primary key", &passenger{}, "Id", false, &Property{"id", nil}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Property(tt.object, tt.field, nil, tt.skipPrimary)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Property() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPropertyErrors(t *testing.T) {
	t.Parallel()
	m := MustNewModel(passenger{})
	if _, err := m.Property(&passenger{}, "Weight", nil, true); !errors.Is(err, ErrNoSuchField) {
		t.Errorf("unknown field error = %v, want ErrNoSuchField", err)
	}
	if _, err := m.Property(&article{}, "Title", nil, true); !errors.Is(err, ErrNotStruct) {
		t.Errorf("wrong type error = %v, want ErrNotStruct", err)
	}
}

func TestPropertyOfUnexportedField(t *testing.T) {
	t.Parallel()
	m := MustNewModel(article{})
	a := &article{hidden: "h", Title: "t"}
	a.Version = 3
	a.CreatedBy = "admin"
	props, err := m.Properties(a, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []Property{
		{"title", "t"},
		{"hidden", "h"},
		{"version", 3},
		{"id", 0},
		{"created_by", "admin"},
	}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("Properties() = %v, want %v", props, want)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	m := MustNewModel(defaultsEntity{})
	key := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		field string
		want  interface{}
	}{
		{"Count", 18},
		{"Ratio", float32(1.5)},
		{"Score", 2.25},
		{"Active", true},
		{"Born", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Seen", time.Date(2021, 12, 25, 8, 30, 0, 0, time.UTC)},
		{"Data", "blob:abc"},
		{"Raw", []byte("xyz")},
		{"Key", key},
		{"Label", "none"},
		{"Plain", nil},
		{"Broken", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()
			p, err := m.Property(&defaultsEntity{}, tt.field, prefixBlobs("blob:"), true)
			if err != nil {
				t.Fatal(err)
			}
			if want, ok := tt.want.(time.Time); ok {
				got, _ := p.Value.(time.Time)
				if !got.Equal(want) {
					t.Errorf("value = %v, want %v", p.Value, want)
				}
				return
			}
			if !reflect.DeepEqual(p.Value, tt.want) {
				t.Errorf("value = %#v, want %#v", p.Value, tt.want)
			}
		})
	}

	p, err := m.Property(&defaultsEntity{}, "Price", nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := p.Value.(decimal.Decimal); !ok || !d.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("Price = %v, want 9.99", p.Value)
	}
}

func TestDefaultsNotUsedForNonNilValues(t *testing.T) {
	t.Parallel()
	m := MustNewModel(defaultsEntity{})
	count := 3
	p, err := m.Property(&defaultsEntity{Count: &count}, "Count", nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 3 {
		t.Errorf("Count = %v, want 3", p.Value)
	}
}

func TestBlobDefaultWithoutCreator(t *testing.T) {
	t.Parallel()
	p, err := MustNewModel(defaultsEntity{}).Property(&defaultsEntity{}, "Data", nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != "abc" {
		t.Errorf("Data = %#v, want the literal", p.Value)
	}
}

func TestStrictDefaults(t *testing.T) {
	t.Parallel()
	m := MustNewModel(defaultsEntity{}).SetStrictDefaults(true)
	_, err := m.Property(&defaultsEntity{}, "Broken", nil, true)
	var cerr *CoercionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *CoercionError", err)
	}
	if cerr.Field != "Broken" || cerr.Type != TypeInt || cerr.Literal != "abc" {
		t.Errorf("unexpected error %+v", cerr)
	}
	if _, err := m.Properties(&defaultsEntity{}, nil, true); !errors.As(err, &cerr) {
		t.Errorf("Properties() error = %v, want *CoercionError", err)
	}
}

func TestProperties(t *testing.T) {
	t.Parallel()
	m := MustNewModel(passenger{})
	p := newPassenger(7, 28, "Tanvir", "M")

	props, err := m.Properties(p, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []Property{{"age", 28}, {"name", "Tanvir"}, {"sex", "M"}}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("Properties(skipPrimary) = %v, want %v", props, want)
	}

	props, err = m.Properties(p, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	want = append([]Property{{"id", 7}}, want...)
	if !reflect.DeepEqual(props, want) {
		t.Errorf("Properties() = %v, want %v", props, want)
	}

	props, err = m.PrimaryProperties(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(props, []Property{{"id", 7}}) {
		t.Errorf("PrimaryProperties() = %v", props)
	}

	props, err = m.Properties(&untagged{}, nil, true)
	if !errors.Is(err, ErrNotStruct) {
		t.Errorf("Properties(untagged) error = %v, want ErrNotStruct", err)
	}
	props, err = MustNewModel(untagged{}).Properties(&untagged{Name: "x"}, nil, true)
	if err != nil || len(props) != 0 {
		t.Errorf("untagged fields should not be mapped, got %v, %v", props, err)
	}
	props, err = MustNewModel(person{}).Properties(&person{Name: "x", Age: 3}, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(props, []Property{{"Name", "x"}, {"Age", 3}}) {
		t.Errorf("accept all Properties() = %v", props)
	}
}

func TestPropertiesOf(t *testing.T) {
	t.Parallel()
	m := MustNewModel(passenger{})
	p := newPassenger(7, 28, "Tanvir", "M")

	props, err := m.PropertiesOf(p, nil, true, " Age ", "Id")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(props, []Property{{"age", 28}}) {
		t.Errorf("PropertiesOf() = %v", props)
	}

	props, err = m.PropertiesOf(p, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(props) != 3 {
		t.Errorf("PropertiesOf() without names = %v", props)
	}

	if _, err := m.PropertiesOf(p, nil, true, "Weight"); !errors.Is(err, ErrNoSuchField) {
		t.Errorf("PropertiesOf(Weight) error = %v", err)
	}
}

func TestCompositePrimaryProperties(t *testing.T) {
	t.Parallel()
	props, err := MustNewModel(ticket{}).PrimaryProperties(ticket{Flight: "BG101", Seat: 12}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Property{{"flight", "BG101"}, {"seat", 12}}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("PrimaryProperties() = %v, want %v", props, want)
	}
}
