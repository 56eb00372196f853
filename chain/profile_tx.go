// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

var (
	_ UnsignedTransaction = &CreateProfileTx{}
	_ UnsignedTransaction = &UpgradeTx{}
)

type CreateProfileTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
	Premium bool `serialize:"true" json:"premium"`
}

func (c *CreateProfileTx) Execute(t *TransactionContext) error {
	p, tr, err := loadPlatform(t)
	if err != nil {
		return err
	}
	_, exists, err := GetProfile(t.Database, t.Sender)
	if err != nil {
		return err
	}
	if exists {
		return ErrProfileExists
	}
	if err := PutProfile(t.Database, &UserProfile{
		User:    t.Sender,
		Premium: c.Premium,
		Created: t.BlockTime,
	}); err != nil {
		return err
	}
	p.TotalUsers++
	if c.Premium {
		p.PremiumUsers++
	}
	return PutPlatform(t.Database, p, tr)
}

func (c *CreateProfileTx) Activity() *Activity {
	return &Activity{Typ: ActivityProfile}
}

func (c *CreateProfileTx) Copy() UnsignedTransaction {
	return &CreateProfileTx{BaseTx: c.BaseTx.Copy(), Premium: c.Premium}
}

// UpgradeTx moves the sender's profile to the premium tier. Upgrading an
// already premium profile changes nothing.
type UpgradeTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`
}

func (u *UpgradeTx) Execute(t *TransactionContext) error {
	prof, exists, err := GetProfile(t.Database, t.Sender)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProfileMissing
	}
	if prof.Premium {
		return nil
	}
	prof.Premium = true
	if err := PutProfile(t.Database, prof); err != nil {
		return err
	}
	p, tr, exists, err := GetPlatform(t.Database)
	if err != nil || !exists {
		return err
	}
	p.PremiumUsers++
	return PutPlatform(t.Database, p, tr)
}

func (u *UpgradeTx) Activity() *Activity {
	return &Activity{Typ: ActivityProfile, Record: "premium"}
}

func (u *UpgradeTx) Copy() UnsignedTransaction {
	return &UpgradeTx{BaseTx: u.BaseTx.Copy()}
}
