package service

// CustomerPatch описывает частичное обновление: nil-поле не трогаем,
// не-nil перезаписываем (в том числе пустой строкой).
// Фиксированный набор полей вместо произвольной карты атрибутов:
// SQL не собирается из строк, инъекция невозможна.
type CustomerPatch struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Memo     *string `json:"memo"`
}

// Changes converts the patch into the column map consumed by the
// repository. Only set fields appear; an empty patch yields an empty
// map and must never be treated as "update everything".
func (p CustomerPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Company != nil {
		changes["company"] = *p.Company
	}
	if p.Position != nil {
		changes["position"] = *p.Position
	}
	if p.Memo != nil {
		changes["memo"] = *p.Memo
	}
	return changes
}

func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil &&
		p.Company == nil && p.Position == nil && p.Memo == nil
}
