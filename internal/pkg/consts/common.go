package consts

const (
	MimePrefixImage = "image"
)

// Object key folders inside the main bucket.
const (
	FolderForumPosts    = "forum_posts/"
	FolderProducts      = "products/"
	FolderProfileImages = "profile_images/"
	FolderCropScans     = "crop_scans/"
)

const (
	MaxImagesPerUpload = 5
	MaxImageSizeBytes  = 5 * 1024 * 1024
	MaxImageDimension  = 1920
)

const DefaultProfileImageURL = "default_profile.png"
