package gallery

// defaultImages are shown until the admin curates the gallery
var defaultImages = []CreateImageRequest{
	{URL: "https://images.unsplash.com/photo-1552053831-71594a27632d?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Golden Retriever feliz após sessão de tosa"},
	{URL: "https://images.unsplash.com/photo-1574158622682-e40e69881006?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Gato malhado relaxado após banho"},
	{URL: "https://images.unsplash.com/photo-1551717743-49959800b1f6?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Beagle amigável após cuidados especiais"},
	{URL: "https://images.unsplash.com/photo-1513245543132-31f507417b26?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Gato persa com pelagem bem cuidada"},
	{URL: "https://images.unsplash.com/photo-1587300003388-59208cc962cb?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Filhote de labrador brincando"},
	{URL: "https://images.unsplash.com/photo-1605568427561-40dd23c2acea?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Husky com lindos olhos azuis"},
	{URL: "https://images.unsplash.com/photo-1592194996308-7b43878e84a6?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=400", Description: "Gato laranja relaxado"},
	{URL: "/petshop2.png", Description: "Pet escolhendo seu mimo"},
	{URL: "/petshop4.jpg", Description: "Que tal deixar seu pet feliz com um ótimo petisco?"},
}
