package items_models

type ItemType int

const (
	ItemTypeUserStory ItemType = 1
	ItemTypeTask      ItemType = 2
	ItemTypeBug       ItemType = 3
	ItemTypeTest      ItemType = 4
)

func (t ItemType) IsValid() bool {
	return t >= ItemTypeUserStory && t <= ItemTypeTest
}

func (t ItemType) String() string {
	switch t {
	case ItemTypeUserStory:
		return "User Story"
	case ItemTypeTask:
		return "Task"
	case ItemTypeBug:
		return "Bug"
	case ItemTypeTest:
		return "Test"
	default:
		return "Unknown"
	}
}

type RelationType int

const (
	RelationTypeRelated RelationType = 1
	RelationTypeParent  RelationType = 2
	RelationTypeChild   RelationType = 3
)
