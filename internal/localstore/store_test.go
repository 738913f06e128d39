package localstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
)

type nota struct {
	models.DefaultModel
	Texto string `json:"texto"`
}

type StoreSuite struct {
	suite.Suite
	store *localstore.Store
	col   *localstore.Collection[nota, *nota]
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	store, err := localstore.Open(s.T().TempDir())
	s.Require().NoError(err)

	s.store = store
	s.col = localstore.NewCollection[nota, *nota](store, "notas")
	s.Require().NoError(s.col.Init())
}

func (s *StoreSuite) TestCreateAssignsIDAndTimestamps() {
	creada, err := s.col.Create(nota{Texto: "hola"})
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, creada.ID)
	s.False(creada.CreatedAt.IsZero())
	s.Equal(creada.CreatedAt, creada.UpdatedAt)
	s.Equal("hola", creada.Texto)
}

func (s *StoreSuite) TestFindByID() {
	creada, err := s.col.Create(nota{Texto: "una"})
	s.Require().NoError(err)
	_, err = s.col.Create(nota{Texto: "otra"})
	s.Require().NoError(err)

	encontrada, ok, err := s.col.FindByID(creada.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("una", encontrada.Texto)

	_, ok, err = s.col.FindByID(uuid.New())
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestUpdate() {
	creada, err := s.col.Create(nota{Texto: "antes"})
	s.Require().NoError(err)

	actualizada, err := s.col.Update(creada.ID, func(n *nota) { n.Texto = "después" })
	s.Require().NoError(err)
	s.Equal("después", actualizada.Texto)
	s.Equal(creada.CreatedAt, actualizada.CreatedAt)

	guardada, ok, err := s.col.FindByID(creada.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("después", guardada.Texto)
}

func (s *StoreSuite) TestUpdateUnknownIDIsNotFound() {
	_, err := s.col.Update(uuid.New(), func(n *nota) {})
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *StoreSuite) TestDelete() {
	creada, err := s.col.Create(nota{Texto: "efímera"})
	s.Require().NoError(err)

	s.Require().NoError(s.col.Delete(creada.ID))

	_, ok, err := s.col.FindByID(creada.ID)
	s.Require().NoError(err)
	s.False(ok)

	err = s.col.Delete(creada.ID)
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *StoreSuite) TestDeleteWhere() {
	for _, texto := range []string{"a", "b", "a"} {
		_, err := s.col.Create(nota{Texto: texto})
		s.Require().NoError(err)
	}

	removidas, err := s.col.DeleteWhere(func(n nota) bool { return n.Texto == "a" })
	s.Require().NoError(err)
	s.Equal(2, removidas)

	restantes, err := s.col.GetAll()
	s.Require().NoError(err)
	s.Len(restantes, 1)
}

func (s *StoreSuite) TestClear() {
	_, err := s.col.Create(nota{Texto: "algo"})
	s.Require().NoError(err)

	s.Require().NoError(s.col.Clear())

	restantes, err := s.col.GetAll()
	s.Require().NoError(err)
	s.Empty(restantes)
}

func (s *StoreSuite) TestReplaceAll() {
	_, err := s.col.Create(nota{Texto: "vieja"})
	s.Require().NoError(err)

	nuevas, err := s.col.ReplaceAll([]nota{{Texto: "una"}, {Texto: "otra"}})
	s.Require().NoError(err)
	s.Require().Len(nuevas, 2)
	s.NotEqual(uuid.Nil, nuevas[0].ID)
	s.False(nuevas[0].CreatedAt.IsZero())

	todas, err := s.col.GetAll()
	s.Require().NoError(err)
	s.Require().Len(todas, 2)
	s.Equal("una", todas[0].Texto)
}

func (s *StoreSuite) TestPersistsAcrossReopen() {
	creada, err := s.col.Create(nota{Texto: "persistente"})
	s.Require().NoError(err)

	// A second collection over the same directory sees the data.
	otra := localstore.NewCollection[nota, *nota](s.store, "notas")
	encontrada, ok, err := otra.FindByID(creada.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("persistente", encontrada.Texto)
}

func TestWithClock(t *testing.T) {
	instante := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store, err := localstore.Open(t.TempDir(), localstore.WithClock(func() time.Time { return instante }))
	require.NoError(t, err)

	col := localstore.NewCollection[nota, *nota](store, "notas")
	require.NoError(t, col.Init())

	creada, err := col.Create(nota{Texto: "fijada"})
	require.NoError(t, err)
	require.Equal(t, instante, creada.CreatedAt)
	require.Equal(t, instante, store.Now())
}

func TestWithIDSource(t *testing.T) {
	fijo := uuid.New()
	store, err := localstore.Open(t.TempDir(), localstore.WithIDSource(func() uuid.UUID { return fijo }))
	require.NoError(t, err)

	col := localstore.NewCollection[nota, *nota](store, "notas")
	require.NoError(t, col.Init())

	creada, err := col.Create(nota{})
	require.NoError(t, err)
	require.Equal(t, fijo, creada.ID)
}
