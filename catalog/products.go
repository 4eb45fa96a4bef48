package catalog

import "github.com/mohamedhosni23/apple-store-bi-project/models"

const imageBase = "https://store.storeimages.cdn-apple.com/4982/as-images.apple.com/is/"
const imageQuery = "?wid=800&hei=800&fmt=jpeg&qlt=90"

func image(name string) string { return imageBase + name + imageQuery }

// Products returns the store catalog without identifiers.
func Products() []models.Product {
	return []models.Product{
		{
			Name:         "iPhone 15 Pro Max",
			Image:        image("iphone-15-pro-max-black-titanium-select"),
			Description:  "iPhone 15 Pro Max with A17 Pro chip, titanium design, 6.7-inch display, and advanced camera system.",
			Brand:        "Apple",
			Category:     "Smartphones",
			Price:        1199,
			CountInStock: 25,
		},
		{
			Name:         "iPhone 15 Pro",
			Image:        image("iphone-15-pro-finish-select-202309-6-1inch-naturaltitanium"),
			Description:  "iPhone 15 Pro featuring A17 Pro chip, titanium design, Action button, and 48MP camera.",
			Brand:        "Apple",
			Category:     "Smartphones",
			Price:        999,
			CountInStock: 30,
		},
		{
			Name:         "iPhone 15",
			Image:        image("iphone-15-finish-select-202309-6-1inch-blue"),
			Description:  "iPhone 15 with Dynamic Island, A16 Bionic chip, and 48MP camera system.",
			Brand:        "Apple",
			Category:     "Smartphones",
			Price:        799,
			CountInStock: 40,
		},
		{
			Name:         "iPhone 15 Plus",
			Image:        image("iphone-15-plus-finish-select-202309-6-7inch-pink"),
			Description:  "iPhone 15 Plus with larger 6.7-inch display, A16 Bionic, and all-day battery life.",
			Brand:        "Apple",
			Category:     "Smartphones",
			Price:        899,
			CountInStock: 35,
		},
		{
			Name:         "iPhone 14",
			Image:        image("iphone-14-finish-select-202209-6-1inch-midnight"),
			Description:  "iPhone 14 with A15 Bionic chip, improved camera, and Crash Detection.",
			Brand:        "Apple",
			Category:     "Smartphones",
			Price:        699,
			CountInStock: 45,
		},
		{
			Name:         "MacBook Pro 16\" M3 Max",
			Image:        image("mbp16-spacegray-select-202310"),
			Description:  "MacBook Pro 16-inch with M3 Max chip, 36GB RAM, stunning Liquid Retina XDR display.",
			Brand:        "Apple",
			Category:     "Laptops",
			Price:        3499,
			CountInStock: 10,
		},
		{
			Name:         "MacBook Pro 14\" M3 Pro",
			Image:        image("mbp14-spacegray-select-202310"),
			Description:  "MacBook Pro 14-inch with M3 Pro chip, 18GB RAM, perfect for professionals.",
			Brand:        "Apple",
			Category:     "Laptops",
			Price:        1999,
			CountInStock: 15,
		},
		{
			Name:         "MacBook Air 15\" M3",
			Image:        image("macbook-air-15-midnight-select-202306"),
			Description:  "MacBook Air 15-inch with M3 chip, stunningly thin design, and all-day battery.",
			Brand:        "Apple",
			Category:     "Laptops",
			Price:        1299,
			CountInStock: 20,
		},
		{
			Name:         "MacBook Air 13\" M3",
			Image:        image("macbook-air-space-gray-select-202402"),
			Description:  "MacBook Air 13-inch with M3 chip, incredibly portable with amazing performance.",
			Brand:        "Apple",
			Category:     "Laptops",
			Price:        1099,
			CountInStock: 25,
		},
		{
			Name:         "iPad Pro 12.9\" M2",
			Image:        image("ipad-pro-12-select-202210"),
			Description:  "iPad Pro 12.9-inch with M2 chip, Liquid Retina XDR display, and Apple Pencil hover.",
			Brand:        "Apple",
			Category:     "Tablets",
			Price:        1099,
			CountInStock: 18,
		},
		{
			Name:         "iPad Pro 11\" M2",
			Image:        image("ipad-pro-11-select-202210"),
			Description:  "iPad Pro 11-inch with M2 chip, portable powerhouse for creative professionals.",
			Brand:        "Apple",
			Category:     "Tablets",
			Price:        799,
			CountInStock: 22,
		},
		{
			Name:         "iPad Air M1",
			Image:        image("ipad-air-select-202203"),
			Description:  "iPad Air with M1 chip, 10.9-inch Liquid Retina display, and all-day battery.",
			Brand:        "Apple",
			Category:     "Tablets",
			Price:        599,
			CountInStock: 30,
		},
		{
			Name:         "iPad 10th Generation",
			Image:        image("ipad-10th-gen-finish-select-202212-blue"),
			Description:  "iPad 10th generation with A14 Bionic chip, colorful design, and USB-C.",
			Brand:        "Apple",
			Category:     "Tablets",
			Price:        449,
			CountInStock: 35,
		},
		{
			Name:         "iPad Mini 6",
			Image:        image("ipad-mini-select-202109"),
			Description:  "iPad mini with A15 Bionic, 8.3-inch Liquid Retina display, ultra-portable.",
			Brand:        "Apple",
			Category:     "Tablets",
			Price:        499,
			CountInStock: 28,
		},
		{
			Name:         "Apple Watch Ultra 2",
			Image:        image("watch-ultra-2"),
			Description:  "Apple Watch Ultra 2 with S9 SiP, precision dual-frequency GPS, and 36-hour battery.",
			Brand:        "Apple",
			Category:     "Wearables",
			Price:        799,
			CountInStock: 12,
		},
		{
			Name:         "Apple Watch Series 9 45mm",
			Image:        image("watch-case-45-aluminum-midnight-nc-s9"),
			Description:  "Apple Watch Series 9 45mm with S9 chip, Double Tap gesture, and brighter display.",
			Brand:        "Apple",
			Category:     "Wearables",
			Price:        429,
			CountInStock: 25,
		},
		{
			Name:         "Apple Watch Series 9 41mm",
			Image:        image("watch-case-41-aluminum-midnight-nc-s9"),
			Description:  "Apple Watch Series 9 41mm, perfect size with all advanced health features.",
			Brand:        "Apple",
			Category:     "Wearables",
			Price:        399,
			CountInStock: 30,
		},
		{
			Name:         "Apple Watch SE 2nd Gen",
			Image:        image("watch-se-case-40-aluminum-midnight-nc-se2"),
			Description:  "Apple Watch SE with essential features at an affordable price.",
			Brand:        "Apple",
			Category:     "Wearables",
			Price:        249,
			CountInStock: 40,
		},
		{
			Name:         "AirPods Pro 2nd Gen",
			Image:        image("MQD83"),
			Description:  "AirPods Pro with Active Noise Cancellation, Adaptive Transparency, and USB-C.",
			Brand:        "Apple",
			Category:     "Audio",
			Price:        249,
			CountInStock: 50,
		},
		{
			Name:         "AirPods 3rd Gen",
			Image:        image("MME73"),
			Description:  "AirPods 3rd generation with Spatial Audio and Adaptive EQ.",
			Brand:        "Apple",
			Category:     "Audio",
			Price:        179,
			CountInStock: 55,
		},
		{
			Name:         "AirPods Max",
			Image:        image("airpods-max-hero-select-202011"),
			Description:  "AirPods Max with high-fidelity audio, Active Noise Cancellation, and premium design.",
			Brand:        "Apple",
			Category:     "Audio",
			Price:        549,
			CountInStock: 15,
		},
		{
			Name:         "iMac 24\" M3",
			Image:        image("imac-24-blue-select-202310"),
			Description:  "iMac 24-inch with M3 chip, stunning 4.5K Retina display, and vibrant colors.",
			Brand:        "Apple",
			Category:     "Desktops",
			Price:        1299,
			CountInStock: 12,
		},
		{
			Name:         "Mac Mini M2",
			Image:        image("mac-mini-hero-202301"),
			Description:  "Mac mini with M2 chip, compact powerhouse for any workspace.",
			Brand:        "Apple",
			Category:     "Desktops",
			Price:        599,
			CountInStock: 20,
		},
		{
			Name:         "Mac Mini M2 Pro",
			Image:        image("mac-mini-hero-202301"),
			Description:  "Mac mini with M2 Pro chip, professional performance in a mini form factor.",
			Brand:        "Apple",
			Category:     "Desktops",
			Price:        1299,
			CountInStock: 10,
		},
		{
			Name:         "Mac Studio M2 Max",
			Image:        image("mac-studio-select-202306"),
			Description:  "Mac Studio with M2 Max chip, extraordinary performance for professionals.",
			Brand:        "Apple",
			Category:     "Desktops",
			Price:        1999,
			CountInStock: 8,
		},
		{
			Name:         "Mac Pro M2 Ultra",
			Image:        image("mac-pro-hero-202306"),
			Description:  "Mac Pro with M2 Ultra chip, ultimate power for the most demanding workflows.",
			Brand:        "Apple",
			Category:     "Desktops",
			Price:        6999,
			CountInStock: 3,
		},
		{
			Name:         "Apple Pencil 2nd Gen",
			Image:        image("MU8F2"),
			Description:  "Apple Pencil 2nd generation with pixel-perfect precision and magnetic attachment.",
			Brand:        "Apple",
			Category:     "Accessories",
			Price:        129,
			CountInStock: 60,
		},
		{
			Name:         "Magic Keyboard for iPad Pro",
			Image:        image("MXQT2"),
			Description:  "Magic Keyboard with floating design, trackpad, and backlit keys.",
			Brand:        "Apple",
			Category:     "Accessories",
			Price:        349,
			CountInStock: 25,
		},
		{
			Name:         "MagSafe Charger",
			Image:        image("MHXH3"),
			Description:  "MagSafe Charger for effortless wireless charging of iPhone and AirPods.",
			Brand:        "Apple",
			Category:     "Accessories",
			Price:        39,
			CountInStock: 100,
		},
	}
}
