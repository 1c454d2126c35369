package main

import "github.com/gopsql/entity"

type Passenger struct {
	__TABLE_NAME__ struct{} `table:"passenger"`

	Id   *int    `pk:"id,auto"`
	Age  *int    `column:"age"`
	Name *string `column:"name"`
	Sex  *string `column:"sex"`
}

var passengers = entity.MustNewModel(Passenger{})
