package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"location",
			"date",
			"time",
			"theme",
			"guest_count",
			"total_price",
			"contact_info",
			"status",
			"payment_status",
			"user_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"location": bson.M{
				"bsonType": "string",
				"enum": []string{
					"juodkrante",
					"nida",
					"klaipeda",
					"palanga",
					"svencele",
					"other",
				},
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"time": bson.M{
				"bsonType": "string",
				"enum": []string{
					"10:00",
					"14:00",
					"18:00",
				},
			},

			"theme": bson.M{
				"bsonType": "string",
				"enum": []string{
					"undiniu",
					"feju",
					"laumiu",
					"disco",
				},
			},

			"guest_count": bson.M{
				"bsonType": "int",
				"minimum":  2,
				"maximum":  14,
			},

			"additional_services": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"base_price": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"additional_price": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"total_price": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"contact_info": bson.M{
				"bsonType": "object",
				"required": []string{"name", "email", "phone"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 100,
					},
					"email": bson.M{
						"bsonType": "string",
					},
					"phone": bson.M{
						"bsonType": "string",
					},
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},

			"payment_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"paid",
					"refunded",
				},
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
