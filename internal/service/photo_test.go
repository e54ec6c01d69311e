package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/service"
)

func newPhotoService(photos *MockPhotoRepo, checkouts *MockCheckoutRepo, users *MockUserRepo, blobs *MockBlobStore) service.PhotoService {
	return service.NewPhotoService(photos, checkouts, users, blobs, service.PhotoConfig{
		MaxFileSizeMB:  50,
		MaxPerCheckout: 10,
		RetentionDays:  90,
	}, fixedClock)
}

func TestPhotoService_AttachPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("DepartStageWhileActive", func(t *testing.T) {
		mockPhotos := new(MockPhotoRepo)
		mockCheckouts := new(MockCheckoutRepo)
		mockUsers := new(MockUserRepo)
		mockBlobs := new(MockBlobStore)
		svc := newPhotoService(mockPhotos, mockCheckouts, mockUsers, mockBlobs)

		mockCheckouts.On("GetByID", ctx, int32(3)).Return(&domain.Checkout{ID: 3, UserID: 1, Active: true}, nil).Once()
		mockPhotos.On("CountByCheckout", ctx, int32(3)).Return(int32(2), nil).Once()
		mockUsers.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Code: "MOTO001"}, nil).Once()
		mockBlobs.On("Save", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "MOTO001/") && strings.Contains(key, "_depart_3_") && strings.HasSuffix(key, ".jpg")
		}), mock.Anything).Return(nil).Once()
		mockPhotos.On("Create", ctx, mock.MatchedBy(func(p *domain.Photo) bool {
			return p.CheckoutID == 3 && p.Stage == domain.PhotoStageDepart
		})).Return(nil).Once()

		photo, err := svc.AttachPhoto(ctx, 1, 3, "front.JPG", strings.NewReader("fake-bytes"), 10)
		require.NoError(t, err)
		assert.Equal(t, domain.PhotoStageDepart, photo.Stage)
		mockBlobs.AssertExpectations(t)
	})

	t.Run("ReturnStageAfterClose", func(t *testing.T) {
		mockPhotos := new(MockPhotoRepo)
		mockCheckouts := new(MockCheckoutRepo)
		mockUsers := new(MockUserRepo)
		mockBlobs := new(MockBlobStore)
		svc := newPhotoService(mockPhotos, mockCheckouts, mockUsers, mockBlobs)

		mockCheckouts.On("GetByID", ctx, int32(3)).Return(&domain.Checkout{ID: 3, UserID: 1, Active: false}, nil).Once()
		mockPhotos.On("CountByCheckout", ctx, int32(3)).Return(int32(0), nil).Once()
		mockUsers.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Code: "MOTO001"}, nil).Once()
		mockBlobs.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		mockPhotos.On("Create", ctx, mock.MatchedBy(func(p *domain.Photo) bool {
			return p.Stage == domain.PhotoStageReturn
		})).Return(nil).Once()

		photo, err := svc.AttachPhoto(ctx, 1, 3, "back.png", strings.NewReader("fake-bytes"), 10)
		require.NoError(t, err)
		assert.Equal(t, domain.PhotoStageReturn, photo.Stage)
	})

	t.Run("BadExtension", func(t *testing.T) {
		svc := newPhotoService(new(MockPhotoRepo), new(MockCheckoutRepo), new(MockUserRepo), new(MockBlobStore))

		_, err := svc.AttachPhoto(ctx, 1, 3, "notes.pdf", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("TooLarge", func(t *testing.T) {
		svc := newPhotoService(new(MockPhotoRepo), new(MockCheckoutRepo), new(MockUserRepo), new(MockBlobStore))

		_, err := svc.AttachPhoto(ctx, 1, 3, "big.jpg", strings.NewReader("x"), 51*1024*1024)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("CheckoutFull", func(t *testing.T) {
		mockPhotos := new(MockPhotoRepo)
		mockCheckouts := new(MockCheckoutRepo)
		mockBlobs := new(MockBlobStore)
		svc := newPhotoService(mockPhotos, mockCheckouts, new(MockUserRepo), mockBlobs)

		mockCheckouts.On("GetByID", ctx, int32(3)).Return(&domain.Checkout{ID: 3, UserID: 1, Active: true}, nil).Once()
		mockPhotos.On("CountByCheckout", ctx, int32(3)).Return(int32(10), nil).Once()

		_, err := svc.AttachPhoto(ctx, 1, 3, "extra.jpg", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, domain.ErrConflict)
		mockBlobs.AssertNotCalled(t, "Save")
	})

	t.Run("SomeoneElsesCheckout", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newPhotoService(new(MockPhotoRepo), mockCheckouts, new(MockUserRepo), new(MockBlobStore))

		mockCheckouts.On("GetByID", ctx, int32(3)).Return(&domain.Checkout{ID: 3, UserID: 99, Active: true}, nil).Once()

		_, err := svc.AttachPhoto(ctx, 1, 3, "front.jpg", strings.NewReader("x"), 1)
		// Someone else's checkout must look absent, not merely off limits.
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestPhotoService_ListUserPhotos_GroupsByDay(t *testing.T) {
	ctx := context.Background()
	mockPhotos := new(MockPhotoRepo)
	mockUsers := new(MockUserRepo)
	svc := newPhotoService(mockPhotos, new(MockCheckoutRepo), mockUsers, new(MockBlobStore))

	mockUsers.On("GetByCode", ctx, "MOTO001").Return(&domain.User{ID: 1, Code: "MOTO001"}, nil).Once()
	mockPhotos.On("ListByUser", ctx, int32(1)).Return([]domain.Photo{
		{ID: 3, CreatedOn: fixedNow},
		{ID: 2, CreatedOn: fixedNow.Add(-2 * time.Hour)},
		{ID: 1, CreatedOn: fixedNow.AddDate(0, 0, -1)},
	}, nil).Once()

	groups, err := svc.ListUserPhotos(ctx, "MOTO001")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-03-10", groups[0].Date)
	assert.Len(t, groups[0].Photos, 2)
	assert.Equal(t, "2026-03-09", groups[1].Date)
}

func TestPhotoService_PurgeOldPhotos(t *testing.T) {
	ctx := context.Background()
	mockPhotos := new(MockPhotoRepo)
	mockBlobs := new(MockBlobStore)
	svc := newPhotoService(mockPhotos, new(MockCheckoutRepo), new(MockUserRepo), mockBlobs)

	cutoff := fixedNow.AddDate(0, 0, -90)
	mockPhotos.On("ListOlderThan", ctx, cutoff).Return([]domain.Photo{
		{ID: 1, Path: "MOTO001/a.jpg"},
		{ID: 2, Path: "MOTO001/b.jpg"},
	}, nil).Once()
	mockBlobs.On("Delete", "MOTO001/a.jpg").Return(nil).Once()
	mockBlobs.On("Delete", "MOTO001/b.jpg").Return(nil).Once()
	mockPhotos.On("Delete", ctx, int32(1)).Return(nil).Once()
	mockPhotos.On("Delete", ctx, int32(2)).Return(nil).Once()

	purged, err := svc.PurgeOldPhotos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)
	mockPhotos.AssertExpectations(t)
}
