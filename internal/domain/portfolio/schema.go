package portfolio

type Collection string

const (
	CollectionProfiles     Collection = "profiles"
	CollectionSkills       Collection = "skills"
	CollectionExperiences  Collection = "experiences"
	CollectionCertificates Collection = "certificates"
	CollectionProjects     Collection = "projects"
	CollectionStatus       Collection = "status"
	CollectionSocialLinks  Collection = "social_links"
)

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldText    FieldType = "text"
	FieldEmail   FieldType = "email"
	FieldURL     FieldType = "url"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
	FieldList    FieldType = "list"
	FieldImages  FieldType = "images"
)

type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Schema describes one collection so admin forms can be generated from it.
type Schema struct {
	Collection Collection `json:"collection"`
	Route      string     `json:"route"`
	Label      string     `json:"label"`
	Plural     string     `json:"plural"`
	Singleton  bool       `json:"singleton"`
	OrderKey   string     `json:"order_key,omitempty"`
	Fields     []Field    `json:"fields"`
}

func optionalField(name string, t FieldType) Field { return Field{Name: name, Type: t} }

func mandatoryField(name string, t FieldType) Field { return Field{Name: name, Type: t, Required: true} }

var orderIndex = optionalField("order_index", FieldInteger)

var (
	ProfileSchema = Schema{
		Collection: CollectionProfiles, Route: "profile", Label: "Profile", Plural: "profile", Singleton: true,
		Fields: []Field{
			mandatoryField("name", FieldString),
			mandatoryField("title", FieldString),
			mandatoryField("bio", FieldText),
			mandatoryField("email", FieldEmail),
			optionalField("phone", FieldString),
			optionalField("location", FieldString),
			optionalField("avatar_url", FieldURL),
			optionalField("resume_url", FieldURL),
		},
	}
	SkillSchema = Schema{
		Collection: CollectionSkills, Route: "skills", Label: "Skill", Plural: "skills", OrderKey: "order_index",
		Fields: []Field{
			mandatoryField("name", FieldString),
			mandatoryField("category", FieldString),
			mandatoryField("level", FieldInteger),
			optionalField("icon", FieldString),
			orderIndex,
		},
	}
	ExperienceSchema = Schema{
		Collection: CollectionExperiences, Route: "experiences", Label: "Experience", Plural: "experiences", OrderKey: "order_index",
		Fields: []Field{
			mandatoryField("company", FieldString),
			mandatoryField("position", FieldString),
			mandatoryField("description", FieldText),
			mandatoryField("start_date", FieldDate),
			optionalField("end_date", FieldDate),
			optionalField("is_current", FieldBoolean),
			optionalField("technologies", FieldList),
			optionalField("certificates", FieldImages),
			orderIndex,
		},
	}
	CertificateSchema = Schema{
		Collection: CollectionCertificates, Route: "certificates", Label: "Certificate", Plural: "certificates", OrderKey: "order_index",
		Fields: []Field{
			mandatoryField("title", FieldString),
			mandatoryField("issuer", FieldString),
			mandatoryField("issue_date", FieldDate),
			optionalField("credential_id", FieldString),
			optionalField("credential_url", FieldURL),
			optionalField("image_url", FieldURL),
			orderIndex,
		},
	}
	ProjectSchema = Schema{
		Collection: CollectionProjects, Route: "projects", Label: "Project", Plural: "projects", OrderKey: "order_index",
		Fields: []Field{
			mandatoryField("title", FieldString),
			mandatoryField("description", FieldText),
			optionalField("image_url", FieldURL),
			optionalField("demo_url", FieldURL),
			optionalField("github_url", FieldURL),
			optionalField("technologies", FieldList),
			optionalField("featured", FieldBoolean),
			orderIndex,
		},
	}
	StatusSchema = Schema{
		Collection: CollectionStatus, Route: "status", Label: "Status", Plural: "status", Singleton: true,
		Fields: []Field{
			optionalField("is_available", FieldBoolean),
			mandatoryField("status_text", FieldString),
		},
	}
	SocialLinkSchema = Schema{
		Collection: CollectionSocialLinks, Route: "social-links", Label: "Social link", Plural: "social links", OrderKey: "order_index",
		Fields: []Field{
			mandatoryField("platform", FieldString),
			mandatoryField("url", FieldURL),
			optionalField("icon", FieldString),
			orderIndex,
		},
	}
)

func Schemas() []Schema {
	return []Schema{
		ProfileSchema,
		SkillSchema,
		ExperienceSchema,
		CertificateSchema,
		ProjectSchema,
		StatusSchema,
		SocialLinkSchema,
	}
}
