package user

import "time"

type accountDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	Role         string    `bson:"role"`
	IsApproved   bool      `bson:"isApproved"`
	ShopName     string    `bson:"shopName,omitempty"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty"`
	Address      string    `bson:"address,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toDocument(a *Account) accountDocument {
	return accountDocument{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role.String(),
		IsApproved:   a.IsApproved,
		ShopName:     a.ShopName,
		PhoneNumber:  a.PhoneNumber,
		Address:      a.Address,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func fromDocument(d accountDocument) (*Account, error) {
	role, err := ParseRole(d.Role)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         role,
		IsApproved:   d.IsApproved,
		ShopName:     d.ShopName,
		PhoneNumber:  d.PhoneNumber,
		Address:      d.Address,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}
